package domain

type DeviceType string

const (
	DeviceTypeLight  DeviceType = "light"
	DeviceTypePlug   DeviceType = "plug"
	DeviceTypeSwitch DeviceType = "switch"
	DeviceTypeOther  DeviceType = "other"
)

type Device struct {
	ID       string
	Name     string
	Category string
	Product  string
	Type     DeviceType
	Online   bool
}

// CategoryType maps a Tuya product category onto a device type.
func CategoryType(category string) DeviceType {
	switch category {
	case "dj", "dd", "fwd", "xdd", "dc", "tgq":
		return DeviceTypeLight
	case "cz", "pc":
		return DeviceTypePlug
	case "kg", "tdq":
		return DeviceTypeSwitch
	default:
		return DeviceTypeOther
	}
}
