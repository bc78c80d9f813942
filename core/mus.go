package core

import (
	"math"

	"github.com/mus-format/mus-go/varint"
)

// Serializers for the persisted catalog types. They follow the
// Size/Marshal/Unmarshal serializer surface used throughout the storage
// layer: Marshal writes into a caller-sized buffer and returns the byte
// count, Unmarshal returns the value, the bytes consumed, and any error.

// IDMUS serializes IDs as unsigned varints.
var IDMUS = idSer{}

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// MovieMUS serializes complete Movie records for catalog storage.
var MovieMUS = movieSer{}

type movieSer struct{}

func (movieSer) Marshal(m Movie, bs []byte) int {
	n := IDMUS.Marshal(m.Id, bs)
	n += marshalString(m.Title, bs[n:])
	n += marshalStrings(m.Genres, bs[n:])
	n += marshalStrings(m.Keywords, bs[n:])
	n += marshalString(m.Overview, bs[n:])
	n += marshalFloat(m.Popularity, bs[n:])
	n += marshalFloat(m.VoteAverage, bs[n:])
	n += varint.Uint64.Marshal(m.VoteCount, bs[n:])
	return n
}

func (movieSer) Unmarshal(bs []byte) (Movie, int, error) {
	var m Movie
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return m, n, err
	}
	m.Id = id

	title, n1, err := unmarshalString(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Title = title

	genres, n1, err := unmarshalStrings(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Genres = genres

	keywords, n1, err := unmarshalStrings(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Keywords = keywords

	overview, n1, err := unmarshalString(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Overview = overview

	popularity, n1, err := unmarshalFloat(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Popularity = popularity

	voteAverage, n1, err := unmarshalFloat(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.VoteAverage = voteAverage

	voteCount, n1, err := varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.VoteCount = voteCount

	return m, n, nil
}

func (movieSer) Size(m Movie) int {
	size := IDMUS.Size(m.Id)
	size += sizeString(m.Title)
	size += sizeStrings(m.Genres)
	size += sizeStrings(m.Keywords)
	size += sizeString(m.Overview)
	size += sizeFloat(m.Popularity)
	size += sizeFloat(m.VoteAverage)
	size += varint.Uint64.Size(m.VoteCount)
	return size
}

// Strings are encoded as a varint byte length followed by raw bytes.

func marshalString(s string, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(s)), bs)
	n += copy(bs[n:], s)
	return n
}

func unmarshalString(bs []byte) (string, int, error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return "", n, err
	}
	if uint64(len(bs[n:])) < length {
		return "", n, ErrShortBuffer
	}
	end := n + int(length)
	return string(bs[n:end]), end, nil
}

func sizeString(s string) int {
	return varint.Uint64.Size(uint64(len(s))) + len(s)
}

// String slices are encoded as a varint element count followed by each
// element in string encoding.

func marshalStrings(ss []string, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(ss)), bs)
	for _, s := range ss {
		n += marshalString(s, bs[n:])
	}
	return n
}

func unmarshalStrings(bs []byte) ([]string, int, error) {
	count, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if count == 0 {
		return nil, n, nil
	}
	if count > uint64(len(bs[n:])) {
		// Each element needs at least one length byte.
		return nil, n, ErrShortBuffer
	}
	ss := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		s, n1, err := unmarshalString(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		ss = append(ss, s)
	}
	return ss, n, nil
}

func sizeStrings(ss []string) int {
	size := varint.Uint64.Size(uint64(len(ss)))
	for _, s := range ss {
		size += sizeString(s)
	}
	return size
}

// Floats are encoded by their IEEE 754 bit pattern as an unsigned varint.

func marshalFloat(f float64, bs []byte) int {
	return varint.Uint64.Marshal(math.Float64bits(f), bs)
}

func unmarshalFloat(bs []byte) (float64, int, error) {
	bits, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return 0, n, err
	}
	return math.Float64frombits(bits), n, nil
}

func sizeFloat(f float64) int {
	return varint.Uint64.Size(math.Float64bits(f))
}
