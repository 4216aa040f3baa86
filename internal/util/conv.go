package util

import "strconv"

func UintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func StringToUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
