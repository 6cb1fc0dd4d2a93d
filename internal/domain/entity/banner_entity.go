package entity

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is a transient result message shown under the form.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

func SuccessBanner(msg string) Banner { return Banner{Kind: BannerSuccess, Message: msg} }
func ErrorBanner(msg string) Banner   { return Banner{Kind: BannerError, Message: msg} }
