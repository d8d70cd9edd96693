package contact

import "errors"

var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrAssigneeNotAdmin = errors.New("contacts can only be assigned to admins")
)
