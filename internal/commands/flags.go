package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
)

// decimalValue lets amounts be passed as flags without float rounding.
type decimalValue struct{ d *decimal.Decimal }

var _ pflag.Value = decimalValue{}

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if !money.InRange(d) {
		return fmt.Errorf("out of range: %q", s)
	}
	*v.d = d
	return nil
}

func (v decimalValue) Type() string { return "decimal" }

func decimalVar(fs *pflag.FlagSet, p *decimal.Decimal, name, value, usage string) {
	*p = decimal.RequireFromString(value)
	fs.Var(decimalValue{p}, name, usage)
}

// provinceValue parses province codes in any case.
type provinceValue struct{ p *model.Province }

var _ pflag.Value = provinceValue{}

func (v provinceValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v provinceValue) Set(s string) error {
	p, err := model.ParseProvince(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v provinceValue) Type() string { return "province" }

func provinceVar(fs *pflag.FlagSet, p *model.Province, name, usage string) {
	fs.Var(provinceValue{p}, name, usage)
}

// province returns p, falling back to the configured default and then Ontario.
func (a *app) province(p model.Province) model.Province {
	if p != "" {
		return p
	}
	if a.cfg != nil {
		if def, err := model.ParseProvince(a.cfg.Defaults.Province); err == nil {
			return def
		}
	}
	return model.ProvinceON
}
