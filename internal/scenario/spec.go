// Package scenario turns external process descriptions (YAML or JSON
// documents, HTTP bodies, tool arguments) into validated
// impact.ProcessParameters.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidScenario is matched by every validation failure.
const ErrInvalidScenario = constError("invalid scenario")

// Spec is the wire shape of one scenario. Enumerated fields are plain
// strings; material and option keys are checked against the reference
// tables by the impact model, not here. Fields omitted from a decoded
// document keep the values of Defaults.
type Spec struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Material    string `json:"material"               yaml:"material"               validate:"required"`
	Source      string `json:"source"                 yaml:"source"                 validate:"required,oneof=virgin scrap"`
	PreviousUse string `json:"previous_use,omitempty" yaml:"previous_use,omitempty" validate:"excluded_if=Source virgin"`

	Mass     float64 `json:"mass"                yaml:"mass"                validate:"gt=0"`
	MassUnit string  `json:"mass_unit,omitempty" yaml:"mass_unit,omitempty" validate:"massunit"`

	TransportDistance float64 `json:"transport_distance" yaml:"transport_distance" validate:"gte=0"`
	TransportMode     string  `json:"transport_mode"     yaml:"transport_mode"`

	RecycledPercent float64 `json:"recycled_percent" yaml:"recycled_percent" validate:"gte=0,lte=100"`

	EnergySource string  `json:"energy_source" yaml:"energy_source" validate:"required"`
	EndOfLife    string  `json:"end_of_life"   yaml:"end_of_life"   validate:"required"`
	ProcessTemp  float64 `json:"process_temp"  yaml:"process_temp"  validate:"gt=-273.15"`
	Efficiency   float64 `json:"efficiency"    yaml:"efficiency"    validate:"gt=0,lte=100"`

	ContaminantLevel float64 `json:"contaminant_level" yaml:"contaminant_level" validate:"gte=0,lte=100"`
	RefiningSteps    int     `json:"refining_steps"    yaml:"refining_steps"    validate:"gte=1"`
	AlloySeparation  bool    `json:"alloy_separation"  yaml:"alloy_separation"`

	WaterIntensity    float64 `json:"water_intensity"     yaml:"water_intensity"     validate:"gte=0"`
	WastePercent      float64 `json:"waste_percent"       yaml:"waste_percent"       validate:"gte=0,lte=100"`
	AirEmissionFactor float64 `json:"air_emission_factor" yaml:"air_emission_factor" validate:"gte=0"`
	LandUseIntensity  float64 `json:"land_use_intensity"  yaml:"land_use_intensity"  validate:"gte=0"`
}

// Defaults returns the reference scenario: one tonne of aluminium from
// virgin ore, trucked 500 km, compared against a 50% recycled blend.
func Defaults() Spec {
	return Spec{
		Material:          string(impact.MaterialAluminum),
		Source:            string(impact.SourceVirgin),
		Mass:              1000, //nolint:mnd // reference scenario
		MassUnit:          "kg",
		TransportDistance: 500, //nolint:mnd // reference scenario
		TransportMode:     string(impact.TransportTruck),
		RecycledPercent:   50, //nolint:mnd // reference scenario
		EnergySource:      string(impact.EnergyGrid),
		EndOfLife:         string(impact.EndOfLifeRecycle),
		ProcessTemp:       800, //nolint:mnd // reference scenario
		Efficiency:        85,  //nolint:mnd // reference scenario
		ContaminantLevel:  2,   //nolint:mnd // reference scenario
		RefiningSteps:     3,   //nolint:mnd // reference scenario
		WaterIntensity:    15,  //nolint:mnd // reference scenario
		WastePercent:      5,   //nolint:mnd // reference scenario
		AirEmissionFactor: 3,   //nolint:mnd // reference scenario
		LandUseIntensity:  0.5, //nolint:mnd // reference scenario
	}
}

// UnmarshalYAML decodes onto Defaults so omitted fields keep their
// reference values.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	type plain Spec
	v := plain(Defaults())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = Spec(v)
	return nil
}

// UnmarshalJSON decodes onto Defaults so omitted fields keep their
// reference values.
func (s *Spec) UnmarshalJSON(data []byte) error {
	type plain Spec
	v := plain(Defaults())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Spec(v)
	return nil
}

// validate is the shared validator, with the massunit rule registered.
//
//nolint:gochecknoglobals // validator caches struct metadata; one instance per process
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0] //nolint:mnd // name,opts
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("massunit", func(fl validator.FieldLevel) bool {
		return greenops.IsMassUnit(fl.Field().String())
	})
	return v
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a Spec.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidScenario, strings.Join(parts, "; "))
}

// Is matches ErrInvalidScenario.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidScenario
}

// Validate checks ranges and wire enumerations. It does not resolve
// material or option keys.
func (s Spec) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

// describe renders a validator failure for people.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "excluded_if":
		return "only applies to scrap sources"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "massunit":
		return fmt.Sprintf("unknown mass unit %q (want g, kg, t or lb)", fe.Value())
	default:
		return "failed " + fe.Tag()
	}
}

// Parameters validates s and converts it into impact parameters, with mass
// normalised to kilograms.
func (s Spec) Parameters() (impact.ProcessParameters, error) {
	if err := s.Validate(); err != nil {
		return impact.ProcessParameters{}, err
	}

	mass, err := greenops.NormalizeToKg(s.Mass, s.MassUnit)
	if err != nil {
		return impact.ProcessParameters{}, &ValidationError{
			Fields: []FieldError{{Field: "mass", Message: err.Error()}},
		}
	}

	var src impact.Source = impact.Virgin{}
	if s.Source == string(impact.SourceScrap) {
		src = impact.Scrap{PriorUse: impact.PriorUse(s.PreviousUse)}
	}

	return impact.ProcessParameters{
		Material:          impact.Material(s.Material),
		Source:            src,
		Mass:              mass,
		TransportDistance: s.TransportDistance,
		TransportMode:     impact.TransportMode(s.TransportMode),
		RecycledPercent:   s.RecycledPercent,
		EnergySource:      impact.EnergySource(s.EnergySource),
		EndOfLife:         impact.EndOfLife(s.EndOfLife),
		ProcessTemp:       s.ProcessTemp,
		Efficiency:        s.Efficiency,
		ContaminantLevel:  s.ContaminantLevel,
		RefiningSteps:     s.RefiningSteps,
		AlloySeparation:   s.AlloySeparation,
		WaterIntensity:    s.WaterIntensity,
		WastePercent:      s.WastePercent,
		AirEmissionFactor: s.AirEmissionFactor,
		LandUseIntensity:  s.LandUseIntensity,
	}, nil
}
