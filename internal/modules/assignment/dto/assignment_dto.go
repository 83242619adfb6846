package dto

import (
	"time"

	"anoa.com/edusphere/internal/entity"
)

type CreateAssignmentInput struct {
	ClassID     string     `json:"class_id" binding:"required,uuid"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Deadline    *time.Time `json:"deadline"`
}

type AssignmentResponse struct {
	Assignment      *entity.Assignment `json:"assignment"`
	AssignmentCount int64              `json:"assignment_count"`
}

type CreateSubmissionInput struct {
	ClassID      string `json:"class_id" binding:"required,uuid"`
	AssignmentID string `json:"assignment_id" binding:"required,uuid"`
	Content      string `json:"content" binding:"required,max=10000"`
}

type SubmissionResponse struct {
	Submission      *entity.Submission `json:"submission"`
	SubmissionCount int64              `json:"submission_count"`
}
