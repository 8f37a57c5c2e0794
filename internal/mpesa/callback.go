package mpesa

import "fmt"

// CallbackEnvelope mirrors the gateway's asynchronous result body:
// Body.stkCallback carries the result code and, on success, a metadata
// item list with the receipt number, amount and payer phone.
type CallbackEnvelope struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

// Succeeded reports whether the callback carries a successful result.
func (c *STKCallback) Succeeded() bool {
	return c.ResultCode == 0
}

// MetadataString returns the named metadata value rendered as a string,
// or "" when absent. Numeric values (the gateway sends amounts and
// phone numbers as JSON numbers) are formatted without an exponent.
func (c *STKCallback) MetadataString(name string) string {
	if c.CallbackMetadata == nil {
		return ""
	}
	for _, item := range c.CallbackMetadata.Item {
		if item.Name != name || item.Value == nil {
			continue
		}
		switch v := item.Value.(type) {
		case string:
			return v
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// MetadataAmount returns the "Amount" metadata value in whole shillings,
// or 0 when absent.
func (c *STKCallback) MetadataAmount() int64 {
	if c.CallbackMetadata == nil {
		return 0
	}
	for _, item := range c.CallbackMetadata.Item {
		if item.Name != "Amount" {
			continue
		}
		if v, ok := item.Value.(float64); ok {
			return int64(v)
		}
	}
	return 0
}
