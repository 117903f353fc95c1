package parser

import (
	"github.com/gzreplay/gzr/pkg/core"
)

// ParseHPAPInfo decodes a health/armour snapshot.
func (p *Parser) ParseHPAPInfo(payload []byte) (core.HPAPInfo, error) {
	var f struct {
		HP float32
		AP float32
	}
	if err := fields(core.OpHPAPInfo, payload, paramsOffset, &f); err != nil {
		return core.HPAPInfo{}, err
	}
	return core.HPAPInfo{HP: f.HP, AP: f.AP}, nil
}

// ParseWeaponChange decodes the id of the newly selected weapon.
func (p *Parser) ParseWeaponChange(payload []byte) (core.WeaponChange, error) {
	var id int32
	if err := fields(core.OpChangeWeapon, payload, paramsOffset, &id); err != nil {
		return core.WeaponChange{}, err
	}
	return core.WeaponChange{WeaponID: id}, nil
}

// ParseDash keeps position and direction as raw shorts.
func (p *Parser) ParseDash(payload []byte) (core.Dash, error) {
	var f struct {
		Position  [3]int16
		Direction [3]int16
		SelType   uint8
	}
	if err := fields(core.OpDash, payload, serverOffset, &f); err != nil {
		return core.Dash{}, err
	}
	return core.Dash{Position: f.Position, Direction: f.Direction, SelType: f.SelType}, nil
}

func (p *Parser) ParseMotionFlag(payload []byte) (core.MotionFlag, error) {
	var raw uint32
	if err := fields(core.OpPeerSPMotion, payload, paramsOffset, &raw); err != nil {
		return core.MotionFlag{}, err
	}
	return core.MotionFlag{Raw: raw}, nil
}
