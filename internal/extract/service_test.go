package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/loi-parser/internal/config"
)

func testConfig() config.AnthropicConfig {
	return config.AnthropicConfig{
		Key:       "test-key",
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 4096,
	}
}

const validLOIJSON = `{
	"property_details": {"address": "100 Main St, Austin, TX"},
	"party_information": {
		"buyer_tenant_name": "Acme Corp",
		"seller_landlord_name": "Main Street Holdings"
	}
}`

const validEnvelopeJSON = `{
	"loi_data": ` + validLOIJSON + `,
	"field_confidences": {
		"property_details.address": 95,
		"party_information.buyer_tenant_name": 88,
		"timeline.closing_date": 40
	}
}`

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{validLOIJSON}}
		svc := NewService(stub, testConfig())

		fields, err := svc.Extract(context.Background(), "long transcript about the Main Street lease")
		require.NoError(t, err)
		assert.Equal(t, "100 Main St, Austin, TX", fields.PropertyDetails.Address)
		assert.Equal(t, "Acme Corp", fields.PartyInformation.BuyerTenantName)

		require.Len(t, stub.calls, 1)
		req := stub.calls[0]
		assert.True(t, req.ForceJSON)
		assert.Equal(t, "claude-sonnet-4-5-20250929", req.Model)
		assert.Equal(t, int64(4096), req.MaxTokens)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.1, *req.Temperature)
		assert.Contains(t, req.System, "Extract LOI (Letter of Intent) terms")
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Main Street lease")
	})

	t.Run("fenced response", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{"```json\n" + validLOIJSON + "\n```"}}
		svc := NewService(stub, testConfig())

		fields, err := svc.Extract(context.Background(), "transcript")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", fields.PartyInformation.BuyerTenantName)
	})

	t.Run("non-json response", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{"I'm sorry, I can't help with that."}}
		svc := NewService(stub, testConfig())

		_, err := svc.Extract(context.Background(), "transcript")
		var malformed *MalformedResponseError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("schema violation", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{`{"property_details": {"address": "1 Elm"}}`}}
		svc := NewService(stub, testConfig())

		_, err := svc.Extract(context.Background(), "transcript")
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Error(), "buyer_tenant_name")
	})

	t.Run("transport timeout", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{err: context.DeadlineExceeded}
		svc := NewService(stub, testConfig())

		_, err := svc.Extract(context.Background(), "transcript")
		var timeout *CollaboratorTimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, "llm", timeout.Collaborator)
	})
}

func TestExtractWithConfidence(t *testing.T) {
	t.Parallel()

	t.Run("valid envelope", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{validEnvelopeJSON}}
		svc := NewService(stub, testConfig())

		result, err := svc.ExtractWithConfidence(context.Background(), "transcript")
		require.NoError(t, err)
		assert.Equal(t, "100 Main St, Austin, TX", result.Data.PropertyDetails.Address)
		assert.Equal(t, 95.0, result.FieldConfidences["property_details.address"])
		assert.Equal(t, []string{"timeline.closing_date"}, result.LowConfidenceFields)

		require.Len(t, stub.calls, 1)
		assert.Contains(t, stub.calls[0].System, "confidence")
		assert.Contains(t, stub.calls[0].Messages[0].Content, "WITH CONFIDENCE SCORES")
	})

	t.Run("flattened envelope falls back to bare loi_data", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{validLOIJSON}}
		svc := NewService(stub, testConfig())

		result, err := svc.ExtractWithConfidence(context.Background(), "transcript")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", result.Data.PartyInformation.BuyerTenantName)
		assert.Empty(t, result.FieldConfidences)
		assert.Empty(t, result.LowConfidenceFields)
	})

	t.Run("out-of-range confidences are clamped", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{`{
			"loi_data": ` + validLOIJSON + `,
			"field_confidences": {"property_details.address": 130, "timeline.closing_date": -10}
		}`}}
		svc := NewService(stub, testConfig())

		result, err := svc.ExtractWithConfidence(context.Background(), "transcript")
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.FieldConfidences["property_details.address"])
		assert.Equal(t, 0.0, result.FieldConfidences["timeline.closing_date"])
		assert.Equal(t, []string{"timeline.closing_date"}, result.LowConfidenceFields)
	})

	t.Run("incomplete loi_data", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{`{
			"loi_data": {"property_details": {"address": "1 Elm St"}},
			"field_confidences": {}
		}`}}
		svc := NewService(stub, testConfig())

		_, err := svc.ExtractWithConfidence(context.Background(), "transcript")
		var incomplete *IncompleteExtractionError
		require.ErrorAs(t, err, &incomplete)
	})

	t.Run("non-json response", func(t *testing.T) {
		t.Parallel()
		stub := &stubClient{responses: []string{"no braces here"}}
		svc := NewService(stub, testConfig())

		_, err := svc.ExtractWithConfidence(context.Background(), "transcript")
		var malformed *MalformedResponseError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around object", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"leading whitespace", "  \n{\"a\": 1}\n", `{"a": 1}`},
		{"no object", "nothing here", "nothing here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, cleanJSON(tc.in))
		})
	}
}
