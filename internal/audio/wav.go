// Package audio plays generated files through external players, converts
// reference audio, and records from the microphone.
package audio

import (
	"encoding/binary"
	"os"
)

const (
	SampleRate    = 24000
	ChannelCount  = 1
	bitsPerSample = 16
)

// WrapPCMAsWAV prefixes 16-bit little-endian mono PCM with a WAV header.
func WrapPCMAsWAV(pcm []byte) []byte {
	const blockAlign = ChannelCount * bitsPerSample / 8
	dataLen := uint32(len(pcm))

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, dataLen+36)
	header = append(header, "WAVEfmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16) // chunk size
	header = binary.LittleEndian.AppendUint16(header, 1)  // PCM
	header = binary.LittleEndian.AppendUint16(header, ChannelCount)
	header = binary.LittleEndian.AppendUint32(header, SampleRate)
	header = binary.LittleEndian.AppendUint32(header, SampleRate*blockAlign)
	header = binary.LittleEndian.AppendUint16(header, blockAlign)
	header = binary.LittleEndian.AppendUint16(header, bitsPerSample)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataLen)

	return append(header, pcm...)
}

// WriteWAV stores pcm as a WAV file at path.
func WriteWAV(path string, pcm []byte) error {
	return os.WriteFile(path, WrapPCMAsWAV(pcm), 0o644)
}
