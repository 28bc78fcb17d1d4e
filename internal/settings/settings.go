package settings

import (
	"github.com/coopco/renewdash/internal/notify"
)

// Settings mirrors the persisted dashboard settings blob. Fields not
// modeled here still round-trip through the store untouched.
type Settings struct {
	AutoRenew             bool             `json:"auto_renew"`
	RenewThresholdDays    int              `json:"renew_threshold_days"`
	CronSchedule          string           `json:"cron_schedule"`
	Timeout               int              `json:"timeout"`
	MaxDelay              int              `json:"max_delay"`
	Debug                 bool             `json:"debug"`
	RequestTimeout        int              `json:"request_timeout"`
	MaxRetries            int              `json:"max_retries"`
	RetryDelay            int              `json:"retry_delay"`
	DownloadTimeout       int              `json:"download_timeout"`
	DownloadMaxRetries    int              `json:"download_max_retries"`
	DownloadRetryDelay    int              `json:"download_retry_delay"`
	CaptchaRetryLimit     int              `json:"captcha_retry_limit"`
	CaptchaRetryUnlimited bool             `json:"captcha_retry_unlimited"`
	CaptchaSaveSamples    bool             `json:"captcha_save_samples"`
	SkipPushTitle         string           `json:"skip_push_title"`
	NotifyConfig          map[string]any   `json:"notify_config"`
	NotifyChannels        []notify.Channel `json:"notify_channels"`
}

// Default returns the settings a fresh installation starts with.
func Default() Settings {
	return Settings{
		RenewThresholdDays: 7,
		CronSchedule:       "0 8 * * *",
		Timeout:            15,
		MaxDelay:           90,
		RequestTimeout:     15,
		MaxRetries:         3,
		RetryDelay:         2,
		DownloadTimeout:    10,
		DownloadMaxRetries: 3,
		DownloadRetryDelay: 2,
		CaptchaRetryLimit:  5,
		NotifyConfig:       map[string]any{},
	}
}

// Account is one managed service account.
type Account struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	APIKey        string `json:"api_key"`
	RenewProducts []int  `json:"renew_products"`
	Enabled       bool   `json:"enabled"`
	LastStatus    string `json:"last_status,omitempty"`
	LastCheckin   string `json:"last_checkin,omitempty"`
}
