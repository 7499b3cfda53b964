package telegram

import (
	"context"
	"log/slog"

	"github.com/gotd/td/tg"

	mediaDomain "github.com/telewaves/telewaves/internal/modules/media/domain"
	mediaService "github.com/telewaves/telewaves/internal/modules/media/service"
)

// channelChatIDOffset shifts channel ids into the negative id space used
// by chat filters, mirroring the convention of client apps.
const channelChatIDOffset int64 = 1_000_000_000_000

// Handler feeds new-message updates into the media processor
type Handler struct {
	processor *mediaService.Service
	logger    *slog.Logger
}

// NewHandler creates a new update handler
func NewHandler(processor *mediaService.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		processor: processor,
		logger:    logger,
	}
}

// Register subscribes the handler to new private, group and channel
// messages on the dispatcher.
func (h *Handler) Register(dispatcher tg.UpdateDispatcher) {
	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
		return h.handle(ctx, e, update.Message)
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
		return h.handle(ctx, e, update.Message)
	})
}

// handle maps one update onto the domain message and runs the processor.
// It always returns nil; one bad message must not stop the update loop.
func (h *Handler) handle(ctx context.Context, e tg.Entities, message tg.MessageClass) error {
	msg, ok := message.(*tg.Message)
	if !ok || msg.Out || msg.Media == nil {
		return nil
	}

	incoming := mapMessage(msg, e)
	if err := h.processor.Process(ctx, incoming); err != nil {
		h.logger.Error("Failed to process message",
			"chat_id", incoming.ChatID,
			"message_id", incoming.ID,
			"error", err)
	}
	return nil
}

// mapMessage builds the domain view of an incoming message.
func mapMessage(msg *tg.Message, e tg.Entities) mediaDomain.Message {
	return mediaDomain.Message{
		ID:       msg.ID,
		ChatID:   peerChatID(msg.GetPeerID()),
		Sender:   resolveSender(msg, e),
		Document: documentFromMedia(msg.Media),
	}
}

// peerChatID flattens a peer into a single id: users are positive, legacy
// group chats negative and channels negative with a fixed offset.
func peerChatID(peer tg.PeerClass) int64 {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return -p.ChatID
	case *tg.PeerChannel:
		return -(channelChatIDOffset + p.ChannelID)
	default:
		return 0
	}
}

// resolveSender finds the sending user, preferring the explicit from id
// and falling back to the peer for direct chats.
func resolveSender(msg *tg.Message, e tg.Entities) mediaDomain.Sender {
	var userID int64
	if from, ok := msg.GetFromID(); ok {
		if peer, ok := from.(*tg.PeerUser); ok {
			userID = peer.UserID
		}
	} else if peer, ok := msg.GetPeerID().(*tg.PeerUser); ok {
		userID = peer.UserID
	}
	if userID == 0 {
		return mediaDomain.Sender{}
	}

	sender := mediaDomain.Sender{ID: userID}
	if user, ok := e.Users[userID]; ok {
		if username, ok := user.GetUsername(); ok {
			sender.Username = username
		}
	}
	return sender
}

// documentFromMedia extracts the document payload of a message, nil for
// photos, geo points and every other media kind.
func documentFromMedia(media tg.MessageMediaClass) *mediaDomain.Document {
	mediaDoc, ok := media.(*tg.MessageMediaDocument)
	if !ok {
		return nil
	}
	docClass, ok := mediaDoc.GetDocument()
	if !ok {
		return nil
	}
	doc, ok := docClass.AsNotEmpty()
	if !ok {
		return nil
	}

	out := &mediaDomain.Document{
		ID:            doc.ID,
		AccessHash:    doc.AccessHash,
		FileReference: doc.FileReference,
		MimeType:      doc.MimeType,
		Size:          doc.Size,
	}
	for _, attribute := range doc.Attributes {
		switch attr := attribute.(type) {
		case *tg.DocumentAttributeFilename:
			if out.DeclaredName == "" {
				out.DeclaredName = attr.FileName
			}
		case *tg.DocumentAttributeAudio:
			out.Audio = true
			out.Voice = attr.Voice
		case *tg.DocumentAttributeVideo:
			out.Video = true
		}
	}
	return out
}
