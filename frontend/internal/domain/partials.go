package frontend_domain

// JoinDialogData drives the join dialog partial.
type JoinDialogData struct {
	Open            bool
	Action          string
	Message         string
	Counter         string
	MaxLen          int
	Processing      bool
	AlreadyMember   bool
	CollaborationID int64
}

// SendMessageDialogData drives the direct message dialog partial.
type SendMessageDialogData struct {
	Action       string
	ReceiverID   int64
	ReceiverName string
	Message      string
	CanSend      bool
	CanCancel    bool
	Alert        string
}
