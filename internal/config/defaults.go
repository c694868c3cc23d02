package config

var defaults = map[string]any{
	"secret":      "",
	"listen_addr": ":8080",
	"log_level":   "info",

	"user_auth_ttl": 8, // 8 days

	"display_quorum": 3,
	"confirm_quorum": 2,
	"window_days":    90,

	"timezone":         "Europe/Berlin",
	"calendar_name":    "Binärgewitter Live Podcast Schedule",
	"ical_export_path": "./instance/podcast.ics",

	"notify_emails": "",

	"email.host":     "host.docker.internal",
	"email.port":     25,
	"email.username": "",
	"email.password": "",
	"email.from":     "noreply@example.com",

	"storage.sqlite.path": "./instance/datefinder.db",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
