package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNoOffers    = errors.New("no offers returned")
	ErrInvalidPlan = errors.New("invalid flight plan")
)
