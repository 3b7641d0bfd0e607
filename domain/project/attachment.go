package project

import "time"

// AttachmentKind distinguishes screenshot and video attachments.
type AttachmentKind string

// AttachmentKind values.
const (
	AttachmentScreenshot AttachmentKind = "screenshot"
	AttachmentVideo      AttachmentKind = "video"
)

// Attachment is a stored media file belonging to a project.
type Attachment struct {
	id        int64
	kind      AttachmentKind
	fileName  string
	filePath  string
	fileSize  int64
	mimeType  string
	createdAt time.Time
}

// NewAttachment creates a new Attachment.
func NewAttachment(id int64, kind AttachmentKind, fileName, filePath string, fileSize int64, mimeType string, createdAt time.Time) Attachment {
	return Attachment{
		id:        id,
		kind:      kind,
		fileName:  fileName,
		filePath:  filePath,
		fileSize:  fileSize,
		mimeType:  mimeType,
		createdAt: createdAt,
	}
}

// ID returns the attachment identifier.
func (a Attachment) ID() int64 { return a.id }

// Kind returns the attachment kind.
func (a Attachment) Kind() AttachmentKind { return a.kind }

// FileName returns the original file name.
func (a Attachment) FileName() string { return a.fileName }

// FilePath returns the storage path or URL.
func (a Attachment) FilePath() string { return a.filePath }

// FileSize returns the file size in bytes.
func (a Attachment) FileSize() int64 { return a.fileSize }

// MimeType returns the MIME type.
func (a Attachment) MimeType() string { return a.mimeType }

// CreatedAt returns the upload timestamp.
func (a Attachment) CreatedAt() time.Time { return a.createdAt }
