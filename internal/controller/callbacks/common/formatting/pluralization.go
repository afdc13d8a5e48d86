package formatting

// Plural возвращает число со словом в нужной форме: "1 session", "3 sessions"
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return FormatNumber(count) + " " + singular
	}
	return FormatNumber(count) + " " + plural
}

// PluralizeSessions - "N session(s)"
func PluralizeSessions(count int) string {
	return Plural(count, "session", "sessions")
}

// PluralizeStudents - "N student(s)"
func PluralizeStudents(count int) string {
	return Plural(count, "student", "students")
}
