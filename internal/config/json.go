package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Name    string `json:"name"`
		DataDir string `json:"data_dir"`
	} `json:"app,omitempty"`

	Network struct {
		Port               uint16   `json:"port"`
		DiscoveryTimeout   Duration `json:"discovery_timeout"`
		LeaseDuration      Duration `json:"lease_duration"`
		MappingDescription string   `json:"mapping_description"`
	} `json:"network,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:    jsonCfg.App.Name,
			DataDir: jsonCfg.App.DataDir,
		},
		Network: Network{
			Port:               jsonCfg.Network.Port,
			DiscoveryTimeout:   time.Duration(jsonCfg.Network.DiscoveryTimeout),
			LeaseDuration:      time.Duration(jsonCfg.Network.LeaseDuration),
			MappingDescription: jsonCfg.Network.MappingDescription,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
