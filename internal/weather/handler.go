package weather

import "github.com/five82/vie/internal/format"

// Image identifies a weather picture on the face.
type Image int

// Images in icon-index order. The service reports indices 0 through 9;
// ImageNoData stands in for anything else.
const (
	ImageClearDay Image = iota
	ImageClearNight
	ImageRain
	ImageSnow
	ImageSleet
	ImageWind
	ImageFog
	ImageCloudy
	ImagePartlyCloudyDay
	ImagePartlyCloudyNight
	ImageNoData
)

// IconCount is the number of icon indices the service may report.
const IconCount = int(ImageNoData)

var imageNames = [...]string{
	"clear-day",
	"clear-night",
	"rain",
	"snow",
	"sleet",
	"wind",
	"fog",
	"cloudy",
	"partly-cloudy-day",
	"partly-cloudy-night",
	"no-data",
}

func (i Image) String() string {
	if i < 0 || int(i) >= len(imageNames) {
		return imageNames[ImageNoData]
	}
	return imageNames[i]
}

// ImageForIcon looks up the picture for an icon index, falling back to
// ImageNoData for anything outside the table.
func ImageForIcon(icon int) Image {
	if icon < 0 || icon >= IconCount {
		return ImageNoData
	}
	return Image(icon)
}

// Update is the set of display changes derived from a weather response. Nil
// fields leave the face untouched.
type Update struct {
	Image       *Image
	Temperature *string
}

// Handle maps a possibly partial response onto display updates.
func Handle(f Fields) Update {
	var u Update
	if f.Icon != nil {
		img := ImageForIcon(*f.Icon)
		u.Image = &img
	}
	if f.Temperature != nil {
		text := format.Temperature(*f.Temperature)
		u.Temperature = &text
	}
	return u
}
