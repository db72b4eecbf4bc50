package handlers

// maxThemeIDLen bounds theme ids taken from the URL.
const maxThemeIDLen = 64

// validateThemeID checks a theme id from the URL. Ids are used as Valkey
// keys, draft file names and database keys, so they are restricted to
// lowercase letters, digits and dashes.
func validateThemeID(id string) string {
	if id == "" {
		return "Theme id is required."
	}
	if len(id) > maxThemeIDLen {
		return "Theme id is too long (max 64 characters)."
	}
	for _, c := range id {
		if !(c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return "Theme id may only contain lowercase letters, digits, '-' and '_'."
		}
	}
	return ""
}
