package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxIDLength bounds node and link identifiers
	MaxIDLength = 100

	idPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]+$`)
)

func init() {
	validate = validator.New()
}

// NodeRecord is a raw node entry as supplied by a topology file, before it
// is admitted into the model.
type NodeRecord struct {
	ID      string `yaml:"id" json:"id" validate:"required,max=100"`
	Name    string `yaml:"name" json:"name" validate:"omitempty,max=200"`
	Country string `yaml:"country,omitempty" json:"country,omitempty" validate:"omitempty,max=100"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,max=50"`
}

// LinkRecord is a raw link entry as supplied by a topology file.
// Cost is the symmetric fallback; ForwardCost/ReverseCost override it per
// direction when present. Capacity is in Mbps, Utilization in percent.
type LinkRecord struct {
	ID          string   `yaml:"id" json:"id" validate:"required,max=100"`
	Source      string   `yaml:"source" json:"source" validate:"required,max=100"`
	Target      string   `yaml:"target" json:"target" validate:"required,max=100"`
	Cost        int      `yaml:"cost" json:"cost" validate:"required,gt=0"`
	ForwardCost *int     `yaml:"forward_cost,omitempty" json:"forward_cost,omitempty" validate:"omitempty"`
	ReverseCost *int     `yaml:"reverse_cost,omitempty" json:"reverse_cost,omitempty" validate:"omitempty"`
	Capacity    float64  `yaml:"capacity,omitempty" json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Utilization *float64 `yaml:"utilization,omitempty" json:"utilization,omitempty" validate:"omitempty"`
	Type        string   `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,max=50"`
	Interface   string   `yaml:"interface,omitempty" json:"interface,omitempty" validate:"omitempty,max=100"`
}

// ValidateNodeRecord validates a raw node entry
func ValidateNodeRecord(rec *NodeRecord) error {
	if rec == nil {
		return errors.New("node record cannot be nil")
	}

	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}

	if !idPattern.MatchString(rec.ID) {
		return fmt.Errorf("ID: node id %q contains invalid characters", rec.ID)
	}
	return nil
}

// ValidateLinkRecord validates a raw link entry. Endpoint existence is a
// topology-level check and is not performed here.
func ValidateLinkRecord(rec *LinkRecord) error {
	if rec == nil {
		return errors.New("link record cannot be nil")
	}

	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}

	if !idPattern.MatchString(rec.ID) {
		return fmt.Errorf("ID: link id %q contains invalid characters", rec.ID)
	}
	if rec.Source == rec.Target {
		return fmt.Errorf("Target: link %q is a self-loop (%s)", rec.ID, rec.Source)
	}
	if rec.Cost <= 0 {
		return fmt.Errorf("%w: link %q cost %d", ErrNonPositiveCost, rec.ID, rec.Cost)
	}
	if rec.ForwardCost != nil && *rec.ForwardCost <= 0 {
		return fmt.Errorf("%w: link %q forward_cost %d", ErrNonPositiveCost, rec.ID, *rec.ForwardCost)
	}
	if rec.ReverseCost != nil && *rec.ReverseCost <= 0 {
		return fmt.Errorf("%w: link %q reverse_cost %d", ErrNonPositiveCost, rec.ID, *rec.ReverseCost)
	}
	if rec.Utilization != nil && (*rec.Utilization < 0 || *rec.Utilization > 100) {
		return fmt.Errorf("Utilization: link %q utilization %.2f outside [0, 100]", rec.ID, *rec.Utilization)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
