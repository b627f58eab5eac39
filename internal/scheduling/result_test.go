package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
)

func TestResult_Kinds(t *testing.T) {
	success := scheduling.SuccessResult("ok", nil)
	require.True(t, success.IsValid())
	require.False(t, success.IsWarning())
	require.False(t, success.IsError())

	warning := scheduling.WarningResult("careful", nil)
	require.True(t, warning.IsValid())
	require.True(t, warning.IsWarning())

	errRes := scheduling.ErrorResult("no", nil)
	require.False(t, errRes.IsValid())
	require.True(t, errRes.IsError())
}

func TestResult_DataIsCopied(t *testing.T) {
	original := map[string]any{"remaining": 4}
	res := scheduling.ErrorResult("no", original)

	original["remaining"] = 99
	require.Equal(t, 4, res.Data()["remaining"])

	leaked := res.Data()
	leaked["remaining"] = 77
	require.Equal(t, 4, res.Data()["remaining"])
}

func TestResult_EmptyData(t *testing.T) {
	res := scheduling.SuccessResult("ok", nil)
	require.NotNil(t, res.Data())
	require.Empty(t, res.Data())
}
