package shortener

import "strconv"

// Hash is the short identifier that appears in a short URL's path.
type Hash string

// Field names a per-platform override stored next to a record's primary URL.
type Field string

const (
	FieldAndroidURL         Field = "android_url"
	FieldAndroidFallbackURL Field = "android_fallback_url"
	FieldIOSURL             Field = "ios_url"
	FieldIOSFallbackURL     Field = "ios_fallback_url"
)

// OptionalFields lists the override fields in storage order.
var OptionalFields = []Field{
	FieldAndroidURL,
	FieldAndroidFallbackURL,
	FieldIOSURL,
	FieldIOSFallbackURL,
}

// Record is everything stored under one hash. An empty LongURL means the record does not exist.
type Record struct {
	LongURL            string
	AndroidURL         string
	AndroidFallbackURL string
	IOSURL             string
	IOSFallbackURL     string
}

// Exists reports whether the primary URL is present.
func (r *Record) Exists() bool {
	return r != nil && r.LongURL != ""
}

// Get returns the value of an optional field.
func (r *Record) Get(f Field) string {
	switch f {
	case FieldAndroidURL:
		return r.AndroidURL
	case FieldAndroidFallbackURL:
		return r.AndroidFallbackURL
	case FieldIOSURL:
		return r.IOSURL
	case FieldIOSFallbackURL:
		return r.IOSFallbackURL
	}

	return ""
}

// Set assigns the value of an optional field.
func (r *Record) Set(f Field, v string) {
	switch f {
	case FieldAndroidURL:
		r.AndroidURL = v
	case FieldAndroidFallbackURL:
		r.AndroidFallbackURL = v
	case FieldIOSURL:
		r.IOSURL = v
	case FieldIOSFallbackURL:
		r.IOSFallbackURL = v
	}
}

// CounterKey is the per-day counter key: <namespace>HI:<day>.
func CounterKey(namespace string, day int64) string {
	return namespace + "HI:" + strconv.FormatInt(day, 10)
}

// RecordKey is the primary key of a record: <namespace>URLS:<hash>.
func RecordKey(namespace string, hash Hash) string {
	return namespace + "URLS:" + string(hash)
}

// FieldKey is the key of an optional field: <namespace>URLS:<hash>:<field>.
func FieldKey(namespace string, hash Hash, f Field) string {
	return RecordKey(namespace, hash) + ":" + string(f)
}
