// If you are AI: This file defines FLV container constants and tag types.

package flv

import "fmt"

// Signature is the 3-byte magic at offset 0 of every FLV file.
const Signature = "FLV"

// Version is the only FLV version written.
const Version = 1

// HeaderSize is the size of the file header, signature included.
const HeaderSize = 9

// TagHeaderSize is the size of a tag header.
const TagHeaderSize = 11

// PrevTagSizeSize is the size of the trailing size field after the header and each tag.
const PrevTagSizeSize = 4

// Header flag bits
const (
	FlagVideo = 0x01
	FlagAudio = 0x04
)

// TagType is the first byte of a tag header.
type TagType uint8

// Tag types
const (
	TagTypeAudio  TagType = 8
	TagTypeVideo  TagType = 9
	TagTypeScript TagType = 18
)

// String returns the tag type name.
func (t TagType) String() string {
	switch t {
	case TagTypeAudio:
		return "audio"
	case TagTypeVideo:
		return "video"
	case TagTypeScript:
		return "metadata"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// SoundFormat is the codec of an audio tag.
type SoundFormat uint8

// Sound formats
const (
	SoundFormatLinearPCM         SoundFormat = 0
	SoundFormatADPCM             SoundFormat = 1
	SoundFormatMP3               SoundFormat = 2
	SoundFormatLinearPCMLE       SoundFormat = 3
	SoundFormatNellymoser16kMono SoundFormat = 4
	SoundFormatNellymoser8kMono  SoundFormat = 5
	SoundFormatNellymoser        SoundFormat = 6
	SoundFormatG711ALaw          SoundFormat = 7
	SoundFormatG711MuLaw         SoundFormat = 8
	SoundFormatReserved          SoundFormat = 9
	SoundFormatAAC               SoundFormat = 10
	SoundFormatSpeex             SoundFormat = 11
	SoundFormatMP38k             SoundFormat = 14
	SoundFormatDeviceSpecific    SoundFormat = 15
)

// SoundRate is the sample-rate class of an audio tag.
type SoundRate uint8

// Sample-rate classes
const (
	SoundRate5k5 SoundRate = 0
	SoundRate11k SoundRate = 1
	SoundRate22k SoundRate = 2
	SoundRate44k SoundRate = 3
)

// Hz returns the nominal sample rate.
func (r SoundRate) Hz() int {
	return [...]int{5512, 11025, 22050, 44100}[r&3]
}

// SoundSize is the sample-size class of an audio tag.
type SoundSize uint8

// Sample sizes
const (
	SoundSize8Bit  SoundSize = 0
	SoundSize16Bit SoundSize = 1
)

// SoundType is the channel mode of an audio tag.
type SoundType uint8

// Channel modes
const (
	SoundTypeMono   SoundType = 0
	SoundTypeStereo SoundType = 1
)

// FrameType is the frame kind of a video tag.
type FrameType uint8

// Video frame types
const (
	FrameTypeKeyframe             FrameType = 1
	FrameTypeInterframe           FrameType = 2
	FrameTypeDisposableInterframe FrameType = 3
	FrameTypeGeneratedKeyframe    FrameType = 4
	FrameTypeCommand              FrameType = 5
)

// CodecID is the codec of a video tag.
type CodecID uint8

// Video codecs
const (
	CodecJPEG          CodecID = 1
	CodecSorensonH263  CodecID = 2
	CodecScreenVideo   CodecID = 3
	CodecOn2VP6        CodecID = 4
	CodecOn2VP6Alpha   CodecID = 5
	CodecScreenVideoV2 CodecID = 6
	CodecAVC           CodecID = 7
)

// AVCPacketType constants
const (
	AVCPacketTypeSequenceHeader = 0
	AVCPacketTypeNALU           = 1
	AVCPacketTypeSequenceEnd    = 2
)

// AACPacketType constants
const (
	AACPacketTypeSequenceHeader = 0
	AACPacketTypeRaw            = 1
)

// IsVideoKeyframe returns true if the FLV video payload represents a keyframe.
// byte[0] upper nibble = frame type (1=keyframe).
func IsVideoKeyframe(payload []byte) bool {
	return len(payload) >= 1 && FrameType(payload[0]>>4) == FrameTypeKeyframe
}
