package transfer

type SettingsUpdate struct {
	WebhookURL string `json:"webhook_url"`
}
