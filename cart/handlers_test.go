package cart

import (
	"encoding/json"
	"testing"
)

func TestFlexIntAcceptsNumberAndString(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`{"q": 3}`, 3},
		{`{"q": "7"}`, 7},
		{`{"q": ""}`, 0},
		{`{"q": "abc"}`, 0},
		{`{"q": null}`, 0},
	}
	for _, tc := range cases {
		var body struct {
			Q FlexInt `json:"q"`
		}
		if err := json.Unmarshal([]byte(tc.in), &body); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		if int(body.Q) != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.in, tc.want, body.Q)
		}
	}
}
