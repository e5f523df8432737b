package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
)

var (
	// urlRegex accepts absolute ftp/http/https URLs without spaces or quotes
	urlRegex = regexp.MustCompile(`^(ftp|http|https)://[^ "]+$`)
	// imageURLRegex also accepts site-relative paths returned by the upload endpoint
	imageURLRegex = regexp.MustCompile(`^((ftp|http|https)://[^ "]+|/[^ "]+)$`)
)

var (
	urlRule      = validation.Match(urlRegex).Error("must be a valid URL")
	imageURLRule = validation.Match(imageURLRegex).Error("must be a valid URL or uploaded image path")
)

// ValidateProject validates a complete project record, as created or as
// merged from a partial update
func ValidateProject(p *models.Project) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required.Error("project name is required")),
		validation.Field(&p.Description, validation.Required.Error("project description is required")),
		validation.Field(&p.Category,
			validation.Required.Error("project category is required"),
			oneOf(models.ProjectCategories, "project category"),
		),
		validation.Field(&p.Status,
			validation.Required.Error("project status is required"),
			oneOf(models.ProjectStatuses, "project status"),
		),
		validation.Field(&p.TechnologiesUsed, validation.Each(validation.Required.Error("technology cannot be blank"))),
		validation.Field(&p.ProjectURL, urlRule),
		validation.Field(&p.RepositoryURL, urlRule),
		validation.Field(&p.ImageURL, imageURLRule),
		validation.Field(&p.EndDate, validation.By(endAfterStart(p.StartDate))),
	)
	return toDomain(err)
}

// ValidateSkill validates a complete skill record
func ValidateSkill(s *models.Skill) error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required.Error("skill name is required")),
		validation.Field(&s.Proficiency,
			validation.Required.Error("proficiency level is required"),
			oneOf(models.ProficiencyLevels, "proficiency level"),
		),
		validation.Field(&s.Category,
			validation.Required.Error("skill category is required"),
			oneOf(models.SkillCategories, "skill category"),
		),
	)
	return toDomain(err)
}

// ValidateBlogPost validates a complete blog post record
func ValidateBlogPost(b *models.BlogPost) error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.Title, validation.Required.Error("blog title is required")),
		validation.Field(&b.Content, validation.Required.Error("blog content is required")),
		validation.Field(&b.Tags, validation.Each(
			validation.Required.Error("tag cannot be blank"),
			oneOf(models.BlogTags, "blog tag"),
		)),
		validation.Field(&b.ImageURL, imageURLRule),
	)
	return toDomain(err)
}

// oneOf restricts a string to the given vocabulary
func oneOf(allowed []string, what string) validation.Rule {
	values := make([]interface{}, len(allowed))
	for i, a := range allowed {
		values[i] = a
	}
	return validation.In(values...).Error(fmt.Sprintf("is not a supported %s", what))
}

// endAfterStart rejects an end date that precedes start
func endAfterStart(start *time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(*time.Time)
		if start == nil || end == nil {
			return nil
		}
		if end.Before(*start) {
			return errors.New("end date cannot be before start date")
		}
		return nil
	}
}

// toDomain flattens ozzo errors into a domain.ValidationError with one
// entry per field, sorted by field name. Nested errors from Each rules
// become "field.index" entries.
func toDomain(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return fmt.Errorf("validation rule failed: %w", internal.InternalError())
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return domain.NewValidationError("", err.Error(), nil)
	}

	out := &domain.ValidationError{}
	flatten("", errs, out)
	sort.Slice(out.Fields, func(i, j int) bool { return out.Fields[i].Field < out.Fields[j].Field })
	return out
}

func flatten(prefix string, errs validation.Errors, out *domain.ValidationError) {
	for field, fieldErr := range errs {
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			flatten(name, nested, out)
			continue
		}
		out.Fields = append(out.Fields, domain.FieldError{Field: name, Message: fieldErr.Error()})
	}
}
