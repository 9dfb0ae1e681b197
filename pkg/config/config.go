// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig contains every tuning value of an arena run
type GameConfig struct {
	Arena      ArenaConfig      `json:"arena" yaml:"arena"`
	Player     PlayerConfig     `json:"player" yaml:"player"`
	Enemy      EnemyConfig      `json:"enemy" yaml:"enemy"`
	Projectile ProjectileConfig `json:"projectile" yaml:"projectile"`
	Pickup     PickupConfig     `json:"pickup" yaml:"pickup"`
	Particle   ParticleConfig   `json:"particle" yaml:"particle"`
	Wave       WaveConfig       `json:"wave" yaml:"wave"`
	Rewards    RewardConfig     `json:"rewards" yaml:"rewards"`
	Contact    ContactConfig    `json:"contact" yaml:"contact"`
	MaxDelta   float64          `json:"maxDelta" yaml:"maxDelta"`
}

// ArenaConfig contains the playfield dimensions
type ArenaConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// PlayerConfig contains the player's starting stat block
type PlayerConfig struct {
	Radius           float64 `json:"radius" yaml:"radius"`
	Speed            float64 `json:"speed" yaml:"speed"`
	MaxHealth        float64 `json:"maxHealth" yaml:"maxHealth"`
	Damage           float64 `json:"damage" yaml:"damage"`
	FireRate         float64 `json:"fireRate" yaml:"fireRate"`
	BulletSpeed      float64 `json:"bulletSpeed" yaml:"bulletSpeed"`
	MultiShot        int     `json:"multiShot" yaml:"multiShot"`
	ProjectileSpread float64 `json:"projectileSpread" yaml:"projectileSpread"`
	RegenRate        float64 `json:"regenRate" yaml:"regenRate"`
}

// EnemyConfig contains the per-level enemy scaling formulas
type EnemyConfig struct {
	BaseRadius     float64 `json:"baseRadius" yaml:"baseRadius"`
	RadiusPerLevel float64 `json:"radiusPerLevel" yaml:"radiusPerLevel"`
	BaseSpeed      float64 `json:"baseSpeed" yaml:"baseSpeed"`
	SpeedPerLevel  float64 `json:"speedPerLevel" yaml:"speedPerLevel"`
	BaseHealth     float64 `json:"baseHealth" yaml:"baseHealth"`
	HealthPerLevel float64 `json:"healthPerLevel" yaml:"healthPerLevel"`
	BaseDamage     float64 `json:"baseDamage" yaml:"baseDamage"`
	DamagePerLevel float64 `json:"damagePerLevel" yaml:"damagePerLevel"`
	MinGlow        float64 `json:"minGlow" yaml:"minGlow"`
	MaxGlow        float64 `json:"maxGlow" yaml:"maxGlow"`
}

// ProjectileConfig contains player projectile constants
type ProjectileConfig struct {
	Radius        float64 `json:"radius" yaml:"radius"`
	Life          float64 `json:"life" yaml:"life"`
	Color         string  `json:"color" yaml:"color"`
	DespawnMargin float64 `json:"despawnMargin" yaml:"despawnMargin"`
}

// PickupConfig contains crystal drop constants
type PickupConfig struct {
	Radius     float64 `json:"radius" yaml:"radius"`
	Life       float64 `json:"life" yaml:"life"`
	DropChance float64 `json:"dropChance" yaml:"dropChance"`
	MinValue   float64 `json:"minValue" yaml:"minValue"`
	MaxValue   float64 `json:"maxValue" yaml:"maxValue"`
}

// ParticleConfig contains cosmetic particle ranges
type ParticleConfig struct {
	MinRadius   float64 `json:"minRadius" yaml:"minRadius"`
	MaxRadius   float64 `json:"maxRadius" yaml:"maxRadius"`
	MinSpeed    float64 `json:"minSpeed" yaml:"minSpeed"`
	MaxSpeed    float64 `json:"maxSpeed" yaml:"maxSpeed"`
	MinLife     float64 `json:"minLife" yaml:"minLife"`
	MaxLife     float64 `json:"maxLife" yaml:"maxLife"`
	Drag        float64 `json:"drag" yaml:"drag"`
	DeathBurst  int     `json:"deathBurst" yaml:"deathBurst"`
	HitParticle int     `json:"hitParticle" yaml:"hitParticle"`
}

// WaveConfig contains wave sizing and spawn placement
type WaveConfig struct {
	BaseCount      int     `json:"baseCount" yaml:"baseCount"`
	CountPerWave   int     `json:"countPerWave" yaml:"countPerWave"`
	MaxCount       int     `json:"maxCount" yaml:"maxCount"`
	SpawnMargin    float64 `json:"spawnMargin" yaml:"spawnMargin"`
	LevelPerWave   float64 `json:"levelPerWave" yaml:"levelPerWave"`
	ClearCredits   float64 `json:"clearCredits" yaml:"clearCredits"`
	CreditsPerWave float64 `json:"creditsPerWave" yaml:"creditsPerWave"`
	ClearScore     float64 `json:"clearScore" yaml:"clearScore"`
}

// RewardConfig contains kill and pickup rewards
type RewardConfig struct {
	KillScore       float64 `json:"killScore" yaml:"killScore"`
	KillCredits     float64 `json:"killCredits" yaml:"killCredits"`
	PickupScoreRate float64 `json:"pickupScoreRate" yaml:"pickupScoreRate"`
}

// ContactConfig contains enemy contact constants
type ContactConfig struct {
	Knockback    float64 `json:"knockback" yaml:"knockback"`
	DamageFactor float64 `json:"damageFactor" yaml:"damageFactor"`
}

// isYAML reports whether path names a YAML document.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, as YAML when the extension
// says so and JSON otherwise
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock arena tuning
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{
			Width:  960,
			Height: 640,
		},
		Player: PlayerConfig{
			Radius:           20,
			Speed:            220,
			MaxHealth:        120,
			Damage:           28,
			FireRate:         0.3,
			BulletSpeed:      460,
			MultiShot:        1,
			ProjectileSpread: 0.15,
			RegenRate:        1.5,
		},
		Enemy: EnemyConfig{
			BaseRadius:     22,
			RadiusPerLevel: 2,
			BaseSpeed:      60,
			SpeedPerLevel:  12,
			BaseHealth:     40,
			HealthPerLevel: 12,
			BaseDamage:     12,
			DamagePerLevel: 4,
			MinGlow:        5,
			MaxGlow:        10,
		},
		Projectile: ProjectileConfig{
			Radius:        5,
			Life:          1.6,
			Color:         "#62f4c9",
			DespawnMargin: 50,
		},
		Pickup: PickupConfig{
			Radius:     12,
			Life:       6,
			DropChance: 0.5,
			MinValue:   20,
			MaxValue:   45,
		},
		Particle: ParticleConfig{
			MinRadius:   2,
			MaxRadius:   4,
			MinSpeed:    30,
			MaxSpeed:    120,
			MinLife:     0.4,
			MaxLife:     0.8,
			Drag:        0.98,
			DeathBurst:  12,
			HitParticle: 1,
		},
		Wave: WaveConfig{
			BaseCount:      6,
			CountPerWave:   2,
			MaxCount:       40,
			SpawnMargin:    60,
			LevelPerWave:   0.8,
			ClearCredits:   60,
			CreditsPerWave: 15,
			ClearScore:     150,
		},
		Rewards: RewardConfig{
			KillScore:       35,
			KillCredits:     25,
			PickupScoreRate: 0.5,
		},
		Contact: ContactConfig{
			Knockback:    8,
			DamageFactor: 0.7,
		},
		MaxDelta: 0.1,
	}
}
