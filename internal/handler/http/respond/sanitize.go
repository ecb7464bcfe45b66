package respond

import "regexp"

var (
	// user:password@ in source URLs
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)

	secretParamPattern = regexp.MustCompile(`(?i)([?&](?:token|access_token|api_key|apikey|key|secret|password)=)[^&\s":]+`)
)

// SanitizeError masks credentials that may appear in upstream URLs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
