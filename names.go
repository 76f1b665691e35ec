package main

import (
	"crypto/rand"
	"math/big"
)

// Hippo names handed to players who register without one. Chosen from a
// pre-written list of guaranteed-funny names.
var hippoNames = []string{
	"Hiphopopotamus",
	"Rhymenocerous",
	"Steve",
	"Peter Potamus",
	"Mr. Wiggles",
	"Mr. Bubbles",
	"Seargent Snout",
	"General Hipper",
	"Calamity Hippopatamy",
	"Hippaul Potamus",
	"Ringo Potamus",
	"Mrs. Basil E. Frankenhippo",
	"Harry Pottamus",
	"Hermoine Potamus",
	"Ron-a-Potamus",
	"Buckbeak",
	"Hippendor",
	"Hippopuff",
	"Hipperin",
	"Marie Hippolonium",
	"Hippope Francis",
	"Danerys Mother of Hippos",
	"Darth Potamus",
	"Hippo the Hutt",
	"Ann Perkopotamins!",
	"Hippopotahut",
	"Hippopotabell",
	"Combination Hippopotahut and Hippopotabell",
	"Hippchat",
	"Slackapotamus",
	"Skyppo",
	"Zippo",
	"Let 'er Rippo",
	"Have a Nice Trippo",
	"Tortilla Chippo",
	"Lastey",
	"Jean-Baptiste Emanuel Hippo",
	"Hippo Hipposon",
	"Son of Potamus",
	"Hippo V. Debs",
	"Hippolyta",
	"Wonder Potamus",
	"Bat-hippo",
	"Hippobrine",
	"H-1000",
	"H-1PO",
	"Hippo of Time",
	"Hippo of Winds",
	"Hippo of Hyrule",
	"Hippo Lippa Lub Dub",
	"Annoying Hippo",
	"Raging Hippo",
	"Raging Rhymenocerous",
	"OMG! Hippopotamus",
	"Hippo Chief 2",
	"Hippo Ex Potamus",
	"Hippo Vodello",
	"Hippo Not Stirred",
	"Hippo the Grey",
	"Hippo the White",
	"The One Hippo",
	"Frippo Hippans",
	"Hippolas",
	"Jean-Luc Hippicard",
	"Padmé Potamus",
	"🦏",
	"The Incredible Hippo",
	"The Amazing Spider-Hippo",
	"Captain Amerihippo",
	"The Winter Hippo",
	"Notorius Hippo G",
	"The More You Hippo",
	"Hippuna Matatamus",
	"Rev. Potomus",
	"Hippocratic",
	"River Horse",
	"Metal Hippo?!",
	"Tactical Hippo Action",
	"Shiny and Hippo",
	"Chekhov's Hippo",
	"The Dude",
	"El Dudedrino",
	"El Hipperino",
	"His Dudeness",
	"His Potamus",
	"Mr. Lebowski",
	"Egopotamus",
	"Mr. Hippo was my father's name",
	"Stardew Hippo",
	"Ninja Hippo",
	"Pirate Hippo",
	"Space Hippo",
	"Space Pirate Ninja Hippo",
	"Hip Hippo",
	"Hippocrates",
	"Hippodrome",
	"Hippolytus",
	"Hipposter",
	"Hippias",
	"Hipparchus",
	"Hipparch",
	"Hippasus",
	"Hippo-Packard",
	"Hippovangelist",
}

func generateName() string {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(hippoNames))))
	if err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return hippoNames[num.Int64()]
}
