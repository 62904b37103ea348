package gemini

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// receiptPayload — ожидаемый JSON от модели. Указатели отличают
// отсутствующее поле от нулевого значения.
type receiptPayload struct {
	Amount       *float64 `json:"amount"`
	Date         *string  `json:"date"`
	Description  string   `json:"description"`
	MerchantName string   `json:"merchantName"`
	Category     string   `json:"category"`
}
