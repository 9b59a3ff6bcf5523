package admin

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/folio/folio/internal/models"
)

// SkillsEditor persists every change at once: each add, edit or remove sends
// the updated list and refetches. There is no pending buffer.
type SkillsEditor struct {
	src    DocSource[models.Skills]
	notify Notifier
	newID  func() string

	mu     sync.Mutex
	state  State
	skills models.Skills
}

func NewSkillsEditor(src DocSource[models.Skills], n Notifier) *SkillsEditor {
	return &SkillsEditor{
		src:    src,
		notify: n,
		newID:  uuid.NewString,
		state:  Loading,
		skills: *models.DefaultSkills(),
	}
}

func (e *SkillsEditor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *SkillsEditor) Skills() models.Skills {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.skills
	s.Technical = append([]models.TechnicalSkill(nil), s.Technical...)
	s.Soft = append([]string(nil), s.Soft...)
	return s
}

func (e *SkillsEditor) Load(ctx context.Context) error {
	s, err := e.src.Get(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Loading {
		e.state = Idle
	}
	if err != nil {
		failure(e.notify, "Failed to fetch skills")
		return err
	}
	e.skills = *s
	return nil
}

func (e *SkillsEditor) AddSoft(ctx context.Context, skill string) error {
	cur := e.Skills()
	next := AddTag(cur.Soft, skill)
	if len(next) == len(cur.Soft) {
		return nil
	}
	return e.push(ctx, map[string]interface{}{"soft": next}, "Soft skill added")
}

func (e *SkillsEditor) RemoveSoft(ctx context.Context, skill string) error {
	cur := e.Skills()
	next := RemoveTag(cur.Soft, skill)
	if len(next) == len(cur.Soft) {
		return nil
	}
	return e.push(ctx, map[string]interface{}{"soft": next}, "Soft skill removed")
}

// AddTechnical assigns a fresh id to skill and stores it.
func (e *SkillsEditor) AddTechnical(ctx context.Context, skill models.TechnicalSkill) error {
	skill.Name = strings.TrimSpace(skill.Name)
	if miss := skill.Missing(); len(miss) > 0 {
		return &IncompleteError{Fields: miss}
	}
	skill.ID = e.newID()
	cur := e.Skills()
	next := append(cur.Technical, skill)
	return e.push(ctx, map[string]interface{}{"technical": next}, "Technical skill added")
}

// UpdateTechnical replaces the skill with skill.ID.
func (e *SkillsEditor) UpdateTechnical(ctx context.Context, skill models.TechnicalSkill) error {
	if miss := skill.Missing(); len(miss) > 0 {
		return &IncompleteError{Fields: miss}
	}
	cur := e.Skills()
	found := false
	for i := range cur.Technical {
		if cur.Technical[i].ID == skill.ID {
			cur.Technical[i] = skill
			found = true
		}
	}
	if !found {
		return ErrNotEditing
	}
	return e.push(ctx, map[string]interface{}{"technical": cur.Technical}, "Technical skill updated")
}

func (e *SkillsEditor) RemoveTechnical(ctx context.Context, id string) error {
	cur := e.Skills()
	next := make([]models.TechnicalSkill, 0, len(cur.Technical))
	for _, s := range cur.Technical {
		if s.ID != id {
			next = append(next, s)
		}
	}
	if len(next) == len(cur.Technical) {
		return nil
	}
	return e.push(ctx, map[string]interface{}{"technical": next}, "Technical skill removed")
}

func (e *SkillsEditor) push(ctx context.Context, patch map[string]interface{}, done string) error {
	e.mu.Lock()
	if e.state == Saving {
		e.mu.Unlock()
		return ErrBusy
	}
	e.state = Saving
	e.mu.Unlock()

	_, err := e.src.Update(ctx, patch)

	e.mu.Lock()
	e.state = Idle
	e.mu.Unlock()
	if err != nil {
		failure(e.notify, "Failed to update skills")
		return err
	}
	success(e.notify, done)
	return e.Load(ctx)
}
