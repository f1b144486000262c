package notifications

import "golang.org/x/text/language"

// The console UI is bilingual; responses carry human-readable labels for
// the closed enumerations so the operator-facing client does not hardcode
// translations.

var supportedLanguages = []language.Tag{
	language.Arabic, // default: the console's primary language
	language.English,
}

var labelMatcher = language.NewMatcher(supportedLanguages)

// MatchLanguage picks the best supported language for an Accept-Language
// header value. An empty or unparseable value falls back to Arabic.
func MatchLanguage(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return supportedLanguages[0]
	}
	// The returned index points into supportedLanguages, which keeps the
	// label tables keyed by canonical tags.
	_, idx := language.MatchStrings(labelMatcher, acceptLanguage)
	return supportedLanguages[idx]
}

var typeLabels = map[language.Tag]map[Type]string{
	language.Arabic: {
		TypeAnnouncement: "إعلان",
		TypeUpdate:       "تحديث",
		TypeMaintenance:  "صيانة",
		TypeAlert:        "تنبيه",
	},
	language.English: {
		TypeAnnouncement: "Announcement",
		TypeUpdate:       "Update",
		TypeMaintenance:  "Maintenance",
		TypeAlert:        "Alert",
	},
}

var audienceLabels = map[language.Tag]map[Audience]string{
	language.Arabic: {
		AudienceAll:      "جميع المستخدمين",
		AudienceAdmins:   "المسؤولين فقط",
		AudienceUsers:    "المستخدمين العاديين فقط",
		AudienceSpecific: "مستخدمين محددين",
	},
	language.English: {
		AudienceAll:      "All users",
		AudienceAdmins:   "Administrators only",
		AudienceUsers:    "Regular users only",
		AudienceSpecific: "Specific users",
	},
}

var statusLabels = map[language.Tag]map[Status]string{
	language.Arabic: {
		StatusDraft:     "مسودة",
		StatusScheduled: "مجدول",
		StatusSent:      "تم الإرسال",
		StatusCancelled: "ملغي",
	},
	language.English: {
		StatusDraft:     "Draft",
		StatusScheduled: "Scheduled",
		StatusSent:      "Sent",
		StatusCancelled: "Cancelled",
	},
}

// Label returns the localized label for t, falling back to the raw value.
func (t Type) Label(lang language.Tag) string {
	if l, ok := typeLabels[lang][t]; ok {
		return l
	}
	return string(t)
}

// Label returns the localized label for a, falling back to the raw value.
func (a Audience) Label(lang language.Tag) string {
	if l, ok := audienceLabels[lang][a]; ok {
		return l
	}
	return string(a)
}

// Label returns the localized label for s, falling back to the raw value.
func (s Status) Label(lang language.Tag) string {
	if l, ok := statusLabels[lang][s]; ok {
		return l
	}
	return string(s)
}
