package utils

type ToPtr interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~string |
		~bool
}

func ValueToPtr[T ToPtr](v T) *T {
	return &v
}

func PtrToValue[T ToPtr](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

// PositiveOr 返回 v，v<=0 时返回 def
func PositiveOr[T ~int | ~int64 | ~float32 | ~float64](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
