package voices

// Preset is a built-in speaker of the custom-voice model.
type Preset struct {
	Name     string
	Language string
	Gender   string
}

// Presets usable with speak --voice.
var Presets = []Preset{
	{Name: "Vivian", Language: "zh", Gender: "Female"},
	{Name: "Serena", Language: "zh", Gender: "Female"},
	{Name: "Uncle_Fu", Language: "zh", Gender: "Male"},
	{Name: "Dylan", Language: "zh (Beijing)", Gender: "Male"},
	{Name: "Eric", Language: "zh (Sichuan)", Gender: "Male"},
	{Name: "Ryan", Language: "en", Gender: "Male"},
	{Name: "Aiden", Language: "en", Gender: "Male"},
	{Name: "Ono_Anna", Language: "ja", Gender: "Female"},
	{Name: "Sohee", Language: "ko", Gender: "Female"},
}

// IsPreset checks if the given name is a built-in speaker.
func IsPreset(name string) bool {
	for _, p := range Presets {
		if p.Name == name {
			return true
		}
	}
	return false
}
