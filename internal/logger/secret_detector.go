package logger

import (
	"regexp"
)

const (
	passwordPattern      = `(?i)(password|passwd|pwd)([\'\"\s:=]+)([a-z0-9!\"#\$%&\\\'\(\)\*\+\,-\./:;<=>\?\@\[\]\^_\{\|\}~]{6,})`
	dsnPasswordPattern   = `([a-zA-Z][a-zA-Z0-9+.-]*://[^/:@\s]+):([^@/\s]+)@` // user:password@host in endpoint URLs and DSNs
	authorizationPattern = `(?i)(authorization)([\'\"\s:=]+)(basic|bearer)\s+([a-z0-9=/_\-\+\.]+)`
	bearerTokenPattern   = `(?i)(bearer)[\s:=]+([a-z0-9_\-\.=/\+]{8,})`
	accessTokenPattern   = `(?i)(access_token|accessToken|token)([\'\"\s:=]+)([a-z0-9=/_\-\+\.]{8,})`
)

var (
	passwordRegexp      = regexp.MustCompile(passwordPattern)
	dsnPasswordRegexp   = regexp.MustCompile(dsnPasswordPattern)
	authorizationRegexp = regexp.MustCompile(authorizationPattern)
	bearerTokenRegexp   = regexp.MustCompile(bearerTokenPattern)
	accessTokenRegexp   = regexp.MustCompile(accessTokenPattern)
)

type secretmasker string

func (s secretmasker) maskPassword() secretmasker {
	return secretmasker(passwordRegexp.ReplaceAllString(s.String(), "$1${2}****"))
}

func (s secretmasker) maskDsnPassword() secretmasker {
	return secretmasker(dsnPasswordRegexp.ReplaceAllString(s.String(), "$1:****@"))
}

func (s secretmasker) maskAuthorization() secretmasker {
	return secretmasker(authorizationRegexp.ReplaceAllString(s.String(), "$1${2}$3 ****"))
}

func (s secretmasker) maskBearerToken() secretmasker {
	return secretmasker(bearerTokenRegexp.ReplaceAllString(s.String(), "$1 ****"))
}

func (s secretmasker) maskAccessToken() secretmasker {
	return secretmasker(accessTokenRegexp.ReplaceAllString(s.String(), "$1${2}****"))
}

func (s secretmasker) String() string {
	return string(s)
}

// MaskSecrets masks passwords and tokens in text.
func MaskSecrets(text string) (masked string) {
	return secretmasker(text).
		maskDsnPassword().
		maskAuthorization().
		maskBearerToken().
		maskAccessToken().
		maskPassword().
		String()
}
