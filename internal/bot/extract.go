package bot

import (
	"github.com/go-telegram/bot/models"

	"github.com/Mraprguild8133/telegramwasabi/internal/transfer"
)

// inboundFrom maps a Telegram message's media attachment onto the tagged
// inbound-file variant the orchestrator consumes. Photos carry no file name;
// the largest rendition is picked.
func inboundFrom(msg *models.Message) (transfer.InboundFile, bool) {
	switch {
	case msg.Document != nil:
		return transfer.InboundFile{
			Kind:         transfer.KindDocument,
			StreamHandle: msg.Document.FileID,
			Name:         msg.Document.FileName,
			SizeBytes:    msg.Document.FileSize,
			OwnerID:      ownerOf(msg),
		}, true
	case msg.Video != nil:
		return transfer.InboundFile{
			Kind:         transfer.KindVideo,
			StreamHandle: msg.Video.FileID,
			Name:         msg.Video.FileName,
			SizeBytes:    msg.Video.FileSize,
			OwnerID:      ownerOf(msg),
		}, true
	case msg.Audio != nil:
		return transfer.InboundFile{
			Kind:         transfer.KindAudio,
			StreamHandle: msg.Audio.FileID,
			Name:         msg.Audio.FileName,
			SizeBytes:    msg.Audio.FileSize,
			OwnerID:      ownerOf(msg),
		}, true
	case len(msg.Photo) > 0:
		largest := msg.Photo[len(msg.Photo)-1]
		return transfer.InboundFile{
			Kind:         transfer.KindPhoto,
			StreamHandle: largest.FileID,
			SizeBytes:    int64(largest.FileSize),
			OwnerID:      ownerOf(msg),
		}, true
	}
	return transfer.InboundFile{}, false
}

func ownerOf(msg *models.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}
