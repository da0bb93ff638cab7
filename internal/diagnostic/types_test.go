package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorAndString(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeUnknownReducer, "reducer \"MEDIAN\" is not built in", "shop.OrderSummary", "median")
	d.AddError(CodeSourcePathNotFound, "entity path \"mail\" not found", "shop.UserView", "email", "email")

	require.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.True(t, d.HasCode(CodeUnknownReducer))

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[shop.UserView] email: [source_path_not_found] entity path "mail" not found (did you mean email?)`,
		err.Error())
}

func TestDiagnostics_AllOrdering(t *testing.T) {
	var d Diagnostics

	d.AddInfo("note", "b", "B", "")
	d.AddWarning("w", "w", "A", "")
	d.AddError("e2", "e", "Z", "")
	d.AddError("e1", "e", "A", "")

	all := d.All()
	require.Len(t, all, 4)
	assert.Equal(t, "e1", all[0].Code)
	assert.Equal(t, "e2", all[1].Code)
	assert.Equal(t, SeverityWarning, all[2].Severity)
	assert.Equal(t, SeverityInfo, all[3].Severity)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "x", "", "")
	b.AddWarning("y", "y", "", "")
	b.AddInfo("z", "z", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
