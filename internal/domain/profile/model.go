package profile

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidSex      = errors.New("sex must be male, female or empty")
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

type Profile struct {
	UserID    string     `diff:"-"`
	FirstName string     `diff:"first_name"`
	LastName  string     `diff:"last_name"`
	BirthDate *time.Time `diff:"birth_date"`
	Sex       string     `diff:"sex"`
	CreatedAt time.Time  `diff:"-"`
	UpdatedAt time.Time  `diff:"updated_at"`
}

func New(
	userID string,
	firstName string,
	lastName string,
	birthDate *time.Time,
	sex string,
) (*Profile, error) {
	sex, err := NormalizeSex(sex)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate,
		Sex:       sex,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Profile) ID() string {
	return p.UserID
}

// Age returns completed years at now. The birth date is a calendar date stored as
// midnight UTC and is compared with the calendar date of now in now's location.
// ok is false without a usable birth date.
func (p *Profile) Age(now time.Time) (age int, ok bool) {
	if p.BirthDate == nil || p.BirthDate.IsZero() {
		return 0, false
	}
	by, bm, bd := p.BirthDate.UTC().Date()
	ny, nm, nd := now.Date()

	birth := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	if birth.After(today) {
		return 0, false
	}

	age = ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age, true
}

type Update struct {
	FirstName *string
	LastName  *string
	BirthDate *time.Time
	Sex       *string
}

func (p *Profile) Apply(u Update) error {
	if u.Sex != nil {
		sex, err := NormalizeSex(*u.Sex)
		if err != nil {
			return err
		}
		p.Sex = sex
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.BirthDate != nil {
		b := *u.BirthDate
		p.BirthDate = &b
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func NormalizeSex(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case SexMale, SexFemale, "":
		return v, nil
	default:
		return "", ErrInvalidSex
	}
}
