package model

import "time"

// Province is the top level of the location hierarchy used by stay
// search.  Provinces are reference data owned by the external catalog
// service; this core only reads them.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique province name.
type Province struct {
    ID   uint64 // provinces.id
    Name string // provinces.name
}

// Place is a town or district within a province.  Properties belong to
// exactly one place.  Like Province, it is read-only reference data.
//
// Fields:
//  ID         – primary key identifier.
//  ProvinceID – province containing this place.
//  Name       – place name, unique per province.
//  CreatedAt  – creation timestamp.
type Place struct {
    ID         uint64    // places.id
    ProvinceID uint64    // places.province_id
    Name       string    // places.name
    CreatedAt  time.Time // places.created_at
}
