// Package settings applies an imported application-settings object to
// client state through an explicit sink, so tests can substitute the
// destination.
package settings

import (
	"context"
	"encoding/json"

	"dataport/internal/importer/interfaces"
	errs "dataport/pkg/errors"
)

type Importer struct {
	sink interfaces.SettingsSink
}

func New(sink interfaces.SettingsSink) *Importer {
	return &Importer{sink: sink}
}

// Import hands the settings object to the sink. No stage reporting, no
// error normalization, the sink's error comes back as-is.
func (i *Importer) Import(ctx context.Context, settings json.RawMessage) error {
	if i.sink == nil {
		return errs.ErrNoSettingsSink
	}
	return i.sink.Apply(ctx, settings)
}
