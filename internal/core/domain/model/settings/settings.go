// Package settings models the admin settings blob the fulfillment core reads from the
// configuration collaborator. The core never writes settings.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Keys of the admin_settings table understood by the core. Other keys are ignored.
const (
	KeyMaintenanceMode    = "maintenance_mode"
	KeyDefaultDeliveryFee = "default_delivery_fee"
	KeyTaxRateBps         = "tax_rate_bps"
)

const maxTaxRateBps = 10000

// Settings is the typed view of the admin settings rows.
type Settings struct {
	// MaintenanceMode makes the HTTP layer reject mutating requests.
	MaintenanceMode bool `json:"maintenanceMode"`
	// DefaultDeliveryFee is charged on every placed order.
	DefaultDeliveryFee kernel.Money `json:"defaultDeliveryFee"`
	// TaxRateBps is the tax rate applied to the subtotal, in basis points.
	TaxRateBps int `json:"taxRateBps"`
}

// Default is used when no rows exist.
func Default() Settings {
	return Settings{}
}

// FromValues parses raw key/value rows. Missing keys keep their default.
func FromValues(values map[string]string) (Settings, error) {
	s := Default()
	var errList []error

	if raw, ok := values[KeyMaintenanceMode]; ok {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(KeyMaintenanceMode, err))
		}
		s.MaintenanceMode = v
	}

	if raw, ok := values[KeyDefaultDeliveryFee]; ok {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(KeyDefaultDeliveryFee, err))
		} else if fee, feeErr := kernel.NewMoney(v); feeErr != nil {
			errList = append(errList, feeErr)
		} else {
			s.DefaultDeliveryFee = fee
		}
	}

	if raw, ok := values[KeyTaxRateBps]; ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(KeyTaxRateBps, err))
		case v < 0 || v > maxTaxRateBps:
			errList = append(errList, errs.NewValueIsOutOfRangeError(KeyTaxRateBps, v, 0, maxTaxRateBps))
		default:
			s.TaxRateBps = v
		}
	}

	if err := errors.Join(errList...); err != nil {
		return Settings{}, fmt.Errorf("parse admin settings: %w", err)
	}
	return s, nil
}

// TaxOn returns the tax due on subtotal.
func (s Settings) TaxOn(subtotal kernel.Money) kernel.Money {
	return subtotal.BasisPoints(s.TaxRateBps)
}
