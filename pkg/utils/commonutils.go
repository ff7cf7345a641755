package utils

import (
	"math"
	"strings"
	"time"

	"github.com/spaolacci/murmur3"
)

const samplingDateLayout = "02-01-2006"

// IsEnableForKeyForToday puts key in one of 100 buckets, re-shuffled daily, and
// reports whether the bucket is below percentage.
func IsEnableForKeyForToday(key string, percentage int) bool {
	return isEnableForKeyOnDate(key, time.Now(), percentage)
}

func isEnableForKeyOnDate(key string, date time.Time, percentage int) bool {
	if percentage <= 0 {
		return false
	}
	if percentage >= 100 {
		return true
	}
	hashValue := GetMurMurHash(key + strings.ReplaceAll(date.Format(samplingDateLayout), "-", ""))
	return (int(math.Abs(float64(hashValue))))%100 < percentage
}

func GetMurMurHash(key string) int32 {
	h := murmur3.New32()
	h.Write([]byte(key))
	return int32(h.Sum32() - math.MaxUint32 - 1)
}

// JoinKey builds a sampling key from request fields.
func JoinKey(parts ...string) string {
	return strings.Join(parts, "|")
}
