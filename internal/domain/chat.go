package domain

import "time"

// ─── Chat / Settings Types ──────────────────────────────────────────────────

// ChatRole distinguishes who wrote a message.
type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleBot  ChatRole = "bot"
)

// ChatHistoryLimit caps the persisted conversation (oldest dropped first).
const ChatHistoryLimit = 50

// ChatMessage is one FAQ-bot conversation entry.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds the user preference flags, persisted as one JSON bucket.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	General       GeneralSettings      `json:"general"`
}

// NotificationSettings controls reminders.
type NotificationSettings struct {
	DailyReminder bool   `json:"daily_reminder"`
	RaffleResults bool   `json:"raffle_results"`
	ReminderTime  string `json:"reminder_time"` // "HH:MM"
}

// PrivacySettings controls what is shared with the community.
type PrivacySettings struct {
	ShareTestimonies bool `json:"share_testimonies"`
	ShowInRankings   bool `json:"show_in_rankings"`
}

// GeneralSettings holds miscellaneous preferences.
type GeneralSettings struct {
	Language string `json:"language"`
	Sound    bool   `json:"sound"`
}

// DefaultSettings returns the out-of-the-box preference flags.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			DailyReminder: true,
			RaffleResults: true,
			ReminderTime:  "09:00",
		},
		Privacy: PrivacySettings{
			ShareTestimonies: false,
			ShowInRankings:   true,
		},
		General: GeneralSettings{
			Language: "en",
			Sound:    true,
		},
	}
}
