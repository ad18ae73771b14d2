package i18n

import (
	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	"golang.org/x/text/message"
)

// ErrorMessage localizes err for display next to the failing control.
func ErrorMessage(p *message.Printer, err error) string {
	if err == nil {
		return ""
	}
	domainErr, ok := apperrors.As(err)
	if !ok {
		return p.Sprintf(apperrors.CodeUpstreamUnavailable.MessageKey())
	}
	key := domainErr.Code.MessageKey()
	switch domainErr.Code {
	case apperrors.CodeUpstreamRejected:
		return p.Sprintf(key, domainErr.Status)
	case apperrors.CodeLocationSampleInvalid:
		return p.Sprintf(key, domainErr.Metadata["Line"])
	default:
		return p.Sprintf(key)
	}
}
