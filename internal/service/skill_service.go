package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
)

const resourceSkill = "skill"

// skillService is the concrete implementation of SkillService
type skillService struct {
	repo repository.SkillRepository
	ids  repository.IDScheme
	now  func() time.Time
	log  zerolog.Logger
}

func newSkillService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *skillService {
	return &skillService{
		repo: repos.Skill,
		ids:  repos.IDs,
		now:  now,
		log:  log.With().Str("service", "skill").Logger(),
	}
}

// List returns all skills, strongest proficiency first and then by name.
// A store failure yields an empty list.
func (s *skillService) List(ctx context.Context) []*models.Skill {
	skills, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list skills")
		return []*models.Skill{}
	}
	sortSkills(skills)
	return skills
}

func sortSkills(skills []*models.Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		ri, rj := models.ProficiencyRank(skills[i].Proficiency), models.ProficiencyRank(skills[j].Proficiency)
		if ri != rj {
			return ri > rj
		}
		return skills[i].Name < skills[j].Name
	})
}

func (s *skillService) Get(ctx context.Context, id string) (*models.Skill, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceSkill, id)
	}
	skill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("get skill", err)
	}
	if skill == nil {
		return nil, notFound(resourceSkill, id)
	}
	return skill, nil
}

func (s *skillService) Create(ctx context.Context, in *models.SkillInput) (*models.Skill, error) {
	now := s.now()
	skill := &models.Skill{ID: s.ids.NewID(), CreatedAt: now, UpdatedAt: now}
	applySkillInput(skill, in)

	if err := validation.ValidateSkill(skill); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, domain.NewStorageFault("create skill", err)
	}

	s.log.Info().Str("id", skill.ID).Str("name", skill.Name).Msg("Skill created")
	return skill, nil
}

func (s *skillService) Update(ctx context.Context, id string, in *models.SkillInput) (*models.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applySkillInput(skill, in)
	skill.UpdatedAt = s.now()

	if err := validation.ValidateSkill(skill); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, skill)
	if err != nil {
		return nil, domain.NewStorageFault("update skill", err)
	}
	if !found {
		return nil, notFound(resourceSkill, id)
	}
	return skill, nil
}

func (s *skillService) Delete(ctx context.Context, id string) (*models.Skill, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceSkill, id)
	}
	skill, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("delete skill", err)
	}
	if skill == nil {
		return nil, notFound(resourceSkill, id)
	}

	s.log.Info().Str("id", id).Msg("Skill deleted")
	return skill, nil
}

func applySkillInput(s *models.Skill, in *models.SkillInput) {
	if in.Name != nil {
		s.Name = trimmed(in.Name)
	}
	if in.Proficiency != nil {
		s.Proficiency = trimmed(in.Proficiency)
	}
	if in.Category != nil {
		s.Category = trimmed(in.Category)
	}
}
