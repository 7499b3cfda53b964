//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MediaKind represents the kind of media content carried by a document
// ENUM(audio,video,photo,document)
type MediaKind string
