package require

import (
	"errors"
	"strings"
	"testing"

	"github.com/prysmaticlabs/shardvote/shared/testutil/assertions"
)

func TestRequire_FailuresAreFatal(t *testing.T) {
	tests := []struct {
		name        string
		check       func(tb assertions.AssertionTestingTB)
		expectedErr string
	}{
		{
			name:        "equal",
			check:       func(tb assertions.AssertionTestingTB) { Equal(tb, 42, 41) },
			expectedErr: "Values are not equal, got: 41, want: 42",
		},
		{
			name:        "no error",
			check:       func(tb assertions.AssertionTestingTB) { NoError(tb, errors.New("failed")) },
			expectedErr: "Unexpected error: failed",
		},
		{
			name:        "not nil",
			check:       func(tb assertions.AssertionTestingTB) { NotNil(tb, nil) },
			expectedErr: "Unexpected nil value",
		},
		{
			name:  "passing check",
			check: func(tb assertions.AssertionTestingTB) { DeepEqual(tb, []int{1}, []int{1}) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &assertions.TBMock{}
			tt.check(tb)
			if tb.ErrorfMsg != "" {
				t.Errorf("require must not report through Errorf, got: %q", tb.ErrorfMsg)
			}
			if !strings.Contains(tb.FatalfMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.FatalfMsg, tt.expectedErr)
			}
			if tt.expectedErr == "" && tb.FatalfMsg != "" {
				t.Errorf("unexpected error: %q", tb.FatalfMsg)
			}
		})
	}
}
