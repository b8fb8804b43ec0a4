package stream

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Frames string `yaml:"frames"`
			Status string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Document       string  `yaml:"document"`
	FrameRate      float64 `yaml:"frameRate"`
	TransitionSecs float64 `yaml:"transitionSecs"`
	ApiAddr        string  `yaml:"apiAddr"`
}
