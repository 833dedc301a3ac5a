package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
)

// Validate checks field values after defaults are applied.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required, validation.By(notBlank("docrefs.config.root_blank", "root must not be blank"))),
		validation.Field(&c.Fix),
		validation.Field(&c.Log),
	)
	if err != nil {
		return errors.ConfigError("invalid configuration").Wrap(err).Build()
	}
	return nil
}

// Validate implements validation.Validatable.
func (f FixConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.MinConfidence, validation.In("high", "medium", "low")),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
		validation.Field(&l.Format, validation.In(LogFormatText, LogFormatJSON)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
