package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/roofcast/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	result := domain.AssemblyResult{
		Assembly:        domain.Assembly{ID: "tpo-adhered", Name: "TPO Fully Adhered"},
		Compliant:       true,
		LaborGreenLight: true,
		EvaluatedAt:     now,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("tpo-adhered"), msg.Key)
	assert.Contains(t, string(msg.Value), `"labor_green_light":true`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "status", msg.Headers[0].Key)
	assert.Equal(t, []byte("go"), msg.Headers[0].Value)
	assert.Equal(t, "evaluated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessageHoldStatus(t *testing.T) {
	result := domain.AssemblyResult{
		Assembly:        domain.Assembly{ID: "bur-asphalt"},
		Compliant:       false,
		LaborGreenLight: false,
		EvaluatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("bur-asphalt"), msg.Key)
	assert.Equal(t, []byte("hold"), msg.Headers[0].Value)
}
