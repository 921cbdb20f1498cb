package email

import "testing"

func TestSendMessageDryRun(t *testing.T) {
	cases := []struct {
		name       string
		sendEmails *bool
	}{
		{name: "nil guard", sendEmails: nil},
		{name: "explicit false", sendEmails: boolPtr(false)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := SendMessage(
				ProviderMailgun, tc.sendEmails,
				"sender@example.com", []string{"recipient@example.com"},
				"subject", "text", "<p>html</p>",
			)
			if e != nil {
				t.Errorf("dry run must not attempt delivery, got %v", e)
			}
		})
	}
}

func TestSendMessageRejectsMissingAddresses(t *testing.T) {
	cases := []struct {
		name       string
		sender     string
		recipients []string
	}{
		{name: "no sender", sender: "", recipients: []string{"recipient@example.com"}},
		{name: "no recipients", sender: "sender@example.com", recipients: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := SendMessage(ProviderMailgun, boolPtr(true), tc.sender, tc.recipients, "subject", "text", "")
			if e == nil {
				t.Error("missing addresses must be rejected before any provider call")
			}
		})
	}
}

func TestSendMessageUnknownProvider(t *testing.T) {
	e := SendMessage(Provider("pigeon"), boolPtr(true), "sender@example.com", []string{"recipient@example.com"}, "subject", "text", "")
	if e == nil {
		t.Error("unknown provider must be rejected")
	}
}

func boolPtr(v bool) *bool {
	return &v
}
