package curve

import (
	"testing"

	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    []models.CurveSample
		wantErr error
	}{
		{
			name: "single line",
			doc:  "GraphicEQ: 20 -3.5; 22 -3.5; 23 -3.4",
			want: []models.CurveSample{sample(20, -3.5), sample(22, -3.5), sample(23, -3.4)},
		},
		{
			name: "header on a later line with CRLF endings",
			doc:  "Preamp: -6.2 dB\r\nGraphicEQ: 20 -3.5; 1000 0.0 \r\nGraphicEQ: 30 9.0\r\n",
			want: []models.CurveSample{sample(20, -3.5), sample(1000, 0)},
		},
		{
			name: "trailing separator and empty tokens",
			doc:  "GraphicEQ: 20 1;;  32 2 ;",
			want: []models.CurveSample{sample(20, 1), sample(32, 2)},
		},
		{
			name: "extra field discards the pair",
			doc:  "GraphicEQ: 20 -3.5; 80 -2 extra; 100 -1",
			want: []models.CurveSample{sample(20, -3.5), sample(100, -1)},
		},
		{
			name: "non numeric field discards the pair",
			doc:  "GraphicEQ: 20 -3.5; eighty -2; 100 -1",
			want: []models.CurveSample{sample(20, -3.5), sample(100, -1)},
		},
		{
			name: "non positive frequencies are discarded",
			doc:  "GraphicEQ: 0 1; -20 2; 20 3",
			want: []models.CurveSample{sample(20, 3)},
		},
		{
			name: "non finite values are discarded",
			doc:  "GraphicEQ: Inf 1; 20 NaN; 30 2",
			want: []models.CurveSample{sample(30, 2)},
		},
		{
			name: "order is preserved",
			doc:  "GraphicEQ: 1000 0; 20 1",
			want: []models.CurveSample{sample(1000, 0), sample(20, 1)},
		},
		{
			name:    "no header",
			doc:     "Preamp: -6.2 dB\nFilter 1: ON PK Fc 20 Hz Gain 3.0 dB Q 1.0",
			wantErr: ErrMissingHeader,
		},
		{
			name:    "indented header is not a header",
			doc:     "  GraphicEQ: 20 1",
			wantErr: ErrMissingHeader,
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: ErrMissingHeader,
		},
		{
			name:    "header without pairs",
			doc:     "GraphicEQ:",
			wantErr: ErrNoSamples,
		},
		{
			name:    "header with only malformed pairs",
			doc:     "GraphicEQ: a b; 20; 30 1 2",
			wantErr: ErrNoSamples,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.doc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
