package engine

import "github.com/sadopc/fokus/internal/store"

// Settings holds the user-configurable durations and toggles. Reads go
// straight to the fields; mutations go through Engine so persistence
// and the idle-timer re-seed happen together.
type Settings struct {
	WorkMinutes             int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int

	NotificationsEnabled bool
	HapticsEnabled       bool
	SoundEnabled         bool
	DarkMode             bool
}

func defaultSettings() Settings {
	return Settings{
		WorkMinutes:             DefaultWorkMinutes,
		ShortBreakMinutes:       DefaultShortBreakMinutes,
		LongBreakMinutes:        DefaultLongBreakMinutes,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
		NotificationsEnabled:    true,
		HapticsEnabled:          true,
		SoundEnabled:            true,
	}
}

func loadSettings(st *store.Store) Settings {
	d := defaultSettings()
	return Settings{
		WorkMinutes:             st.GetSettingInt("work_minutes", d.WorkMinutes),
		ShortBreakMinutes:       st.GetSettingInt("short_break_minutes", d.ShortBreakMinutes),
		LongBreakMinutes:        st.GetSettingInt("long_break_minutes", d.LongBreakMinutes),
		SessionsBeforeLongBreak: st.GetSettingInt("sessions_before_long_break", d.SessionsBeforeLongBreak),
		NotificationsEnabled:    st.GetSettingBool("notifications_enabled", true),
		HapticsEnabled:          st.GetSettingBool("haptics_enabled", true),
		SoundEnabled:            st.GetSettingBool("sound_enabled", true),
		DarkMode:                st.GetSettingBool("dark_mode", false),
	}
}

// PhaseMinutes returns the configured duration for a phase.
func (s Settings) PhaseMinutes(p Phase) int {
	switch p {
	case PhaseShortBreak:
		return s.ShortBreakMinutes
	case PhaseLongBreak:
		return s.LongBreakMinutes
	default:
		return s.WorkMinutes
	}
}

func (s Settings) PhaseSeconds(p Phase) int {
	return s.PhaseMinutes(p) * 60
}
