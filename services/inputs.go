package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"house-prices/models"
)

// ErrInvalidInput is returned when widget state cannot be turned into a Query.
var ErrInvalidInput = errors.New("invalid input")

// AnyLabel is the first option of every selector and maps to models.Wildcard.
const AnyLabel = "Неважно"

// Query string parameter names used by the sidebar form.
const (
	ParamCondition  = "cond"
	ParamUtilities  = "utilities"
	ParamFoundation = "foundation"
	ParamYearBuilt  = "year"
	ParamZoning     = "zone"
)

// Option is one entry of a selector: what the user sees and the dataset code.
type Option struct {
	Label string
	Code  string
}

// Selector is a labelled dropdown with a fixed, ordered option list.
type Selector struct {
	Param   string
	Title   string
	Options []Option
}

// Slider is a labelled integer range control.
type Slider struct {
	Param   string
	Title   string
	Min     int
	Max     int
	Default int
}

var (
	ConditionSlider = Slider{Param: ParamCondition, Title: "Общее состояние", Min: 1, Max: 10, Default: 5}
	YearSlider      = Slider{Param: ParamYearBuilt, Title: "Год постройки", Min: 1900, Max: 2010, Default: 2006}

	UtilitiesSelector = Selector{
		Param: ParamUtilities,
		Title: "Коммуникации",
		Options: []Option{
			{AnyLabel, models.Wildcard},
			{"Все", "AllPub"},
			{"Электричество, газ, вода", "NoSewr"},
			{"Электричество, газ", "NoSeWa"},
			{"Только электричество", "ELO"},
		},
	}

	FoundationSelector = Selector{
		Param: ParamFoundation,
		Title: "Материал конструкции",
		Options: []Option{
			{AnyLabel, models.Wildcard},
			{"Кирпич и Плитка", "BrkTil"},
			{"Шлакоблок", "CBlock"},
			{"Заливной бетон", "PConc"},
			{"Плита", "Slab"},
			{"Камень", "Stone"},
			{"Дерево", "Wood"},
		},
	}

	ZoningSelector = Selector{
		Param: ParamZoning,
		Title: "Тип недвижимости",
		Options: []Option{
			{AnyLabel, models.Wildcard},
			{"Жилье сельско хозяйственной зоны", "A"},
			{"Тороговая недвижимость", "C"},
			{"Жилье на воде (хаусбот)", "FV"},
			{"Жилье промышленной зоны", "I"},
			{"Жилье высокой плотности", "RH"},
			{"Жилье низкой плотности", "RL"},
			{"Жилье низкой плотности рядом с парком", "RP"},
			{"Жилье средней плотности", "RM"},
		},
	}
)

// Code returns the dataset code for a display label.
func (s Selector) Code(label string) (string, bool) {
	for _, o := range s.Options {
		if o.Label == label {
			return o.Code, true
		}
	}
	return "", false
}

// Selection is the raw widget state echoed back into the form.
type Selection struct {
	Condition  int
	Utilities  string
	Foundation string
	YearBuilt  int
	Zoning     string
}

// DefaultSelection is the widget state of a fresh page.
func DefaultSelection() Selection {
	return Selection{
		Condition:  ConditionSlider.Default,
		Utilities:  AnyLabel,
		Foundation: AnyLabel,
		YearBuilt:  YearSlider.Default,
		Zoning:     AnyLabel,
	}
}

// Values encodes a selection as form query parameters.
func (s Selection) Values() url.Values {
	v := url.Values{}
	v.Set(ParamCondition, strconv.Itoa(s.Condition))
	v.Set(ParamUtilities, s.Utilities)
	v.Set(ParamFoundation, s.Foundation)
	v.Set(ParamYearBuilt, strconv.Itoa(s.YearBuilt))
	v.Set(ParamZoning, s.Zoning)
	return v
}

// ParseQuery turns form values into a Query. Missing parameters take the
// widget defaults.
func ParseQuery(v url.Values) (models.Query, Selection, error) {
	sel := DefaultSelection()
	var err error

	if sel.Condition, err = ConditionSlider.parse(v); err != nil {
		return models.Query{}, sel, err
	}
	if sel.YearBuilt, err = YearSlider.parse(v); err != nil {
		return models.Query{}, sel, err
	}

	q := models.Query{OverallCond: sel.Condition, YearBuilt: sel.YearBuilt}

	if sel.Utilities, q.Utilities, err = UtilitiesSelector.parse(v); err != nil {
		return models.Query{}, sel, err
	}
	if sel.Foundation, q.Foundation, err = FoundationSelector.parse(v); err != nil {
		return models.Query{}, sel, err
	}
	if sel.Zoning, q.MSZoning, err = ZoningSelector.parse(v); err != nil {
		return models.Query{}, sel, err
	}

	return q, sel, nil
}

func (s Slider) parse(v url.Values) (int, error) {
	raw := v.Get(s.Param)
	if raw == "" {
		return s.Default, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidInput, s.Param, raw)
	}
	if n < s.Min || n > s.Max {
		return 0, fmt.Errorf("%w: %s=%d outside %d..%d", ErrInvalidInput, s.Param, n, s.Min, s.Max)
	}
	return n, nil
}

// parse returns the selected label and its code.
func (s Selector) parse(v url.Values) (string, string, error) {
	label := v.Get(s.Param)
	if label == "" {
		label = AnyLabel
	}
	code, ok := s.Code(label)
	if !ok {
		return "", "", fmt.Errorf("%w: %s=%q is not an option", ErrInvalidInput, s.Param, label)
	}
	return label, code, nil
}
