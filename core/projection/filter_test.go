package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
)

func TestFilter(t *testing.T) {
	vs := views(
		&domain.Request{DocumentID: "a", Status: domain.RequestStatusApproved, LimitDate: "2024-01-11", Department: "IT"},
		&domain.Request{DocumentID: "b", Status: domain.RequestStatusApproved, LimitDate: "2024-02-11", Department: "HR"},
		&domain.Request{DocumentID: "c", Status: domain.RequestStatusPending, Details: map[string]interface{}{"site": "HQ"}},
	)

	tests := []struct {
		expression string
		want       []string
	}{
		{expression: `Status == "approved" && HasDeadline && DaysRemaining < 3`, want: []string{"a"}},
		{expression: `Department in ["IT", "HR"]`, want: []string{"a", "b"}},
		{expression: `Details.site == "HQ"`, want: []string{"c"}},
		{expression: `!HasDeadline`, want: []string{"c"}},
		{expression: `Bucket == "urgent"`, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := projection.CompileFilter(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.String())

			got, err := f.Apply(vs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("rejects non boolean expressions", func(t *testing.T) {
		_, err := projection.CompileFilter(`DaysRemaining + 1`)
		assert.Error(t, err)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := projection.CompileFilter(`Color == "red"`)
		assert.Error(t, err)
	})
}
