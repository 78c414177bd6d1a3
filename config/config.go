package config

type Config struct {
	Cpu, MaxBuf, Reads int
	Secondary          bool
}

func NewConfig(cpu, maxBuf, reads int, secondary bool) *Config {
	return &Config{cpu, maxBuf, reads, secondary}
}
