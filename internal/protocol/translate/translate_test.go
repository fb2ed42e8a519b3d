package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

func TestResultCodeRoundTripsForSharedVocabulary(t *testing.T) {
	cases := []common.ResultCode{
		common.ResultSuccess,
		common.ResultInvalidData,
		common.ResultRejected,
		common.ResultUnsupportedResource,
	}
	for _, rc := range cases {
		assert.Equal(t, rc, ResultCodeFromHMI(ResultCodeToHMI(rc)), "round trip for %v", rc)
	}
}

func TestResultCodeToHMICollapsesRegistrationErrorsToRejected(t *testing.T) {
	assert.Equal(t, hmi.ResultRejected, ResultCodeToHMI(common.ResultApplicationNotRegistered))
	assert.Equal(t, hmi.ResultRejected, ResultCodeToHMI(common.ResultApplicationRegisteredAlready))
}

func TestResultCodeFromHMIDefaultsUnknownToGenericError(t *testing.T) {
	assert.Equal(t, common.ResultGenericError, ResultCodeFromHMI(hmi.ResultCode("Unmapped")))
}

func TestShowParamsPrefersV2Request(t *testing.T) {
	field := "Hello"
	v2req := &v2.ShowRequest{MainField1: &field}
	params := ShowParams(7, nil, v2req)
	assert.Equal(t, uint32(7), params.AppID)
	require_ptrEqual(t, "Hello", params.MainField1)
}

func require_ptrEqual(t *testing.T, want string, got *string) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %q, got nil", want)
	}
	assert.Equal(t, want, *got)
}

func TestSliderParamsCarriesAllFields(t *testing.T) {
	footer := "footer"
	timeout := uint32(5000)
	req := v2.SliderRequest{
		NumTicks:     10,
		Position:     3,
		SliderHeader: "header",
		SliderFooter: &footer,
		TimeoutMs:    &timeout,
	}
	params := SliderParams(42, req)
	assert.Equal(t, uint32(42), params.AppID)
	assert.Equal(t, uint32(10), params.NumTicks)
	assert.Equal(t, uint32(3), params.Position)
	assert.Equal(t, "header", params.SliderHeader)
	require.NotNil(t, params.SliderFooter)
	assert.Equal(t, "footer", *params.SliderFooter)
	require.NotNil(t, params.TimeoutMs)
	assert.Equal(t, uint32(5000), *params.TimeoutMs)
}
