package view

// SessionFormFooter renders the footer for the session form modal.
func SessionFormFooter(styles ModalStyles) string {
	return buttons(styles, false, "[Enter] Save", "[Tab] Next field", "[Esc] Cancel")
}

// SessionDetailFooter renders the footer for the session detail modal.
func SessionDetailFooter(styles ModalStyles) string {
	return buttons(styles, true, "[e] Edit", "[m] Move", "[d] Delete", "[Esc] Close")
}

// ConfirmDeleteFooter renders the footer for the confirm delete modal.
func ConfirmDeleteFooter(styles ModalStyles) string {
	return buttons(styles, false, "[y/Enter] Delete", "[n/Esc] Keep")
}

// DraftResultFooter renders the footer for the draft result modal. A draft
// with validation errors cannot be accepted.
func DraftResultFooter(hasValidationErrors bool, styles ModalStyles) string {
	if hasValidationErrors {
		return buttons(styles, false, "[m] Modify", "[Esc/c] Cancel")
	}
	return buttons(styles, false, "[Enter/a] Accept", "[m] Modify", "[Esc/c] Cancel")
}

// ReviewFooter renders the footer for the day review modal.
func ReviewFooter(styles ModalStyles) string {
	return buttons(styles, false, "[y] Copy", "[Esc] Close")
}
