//go:build darwin && cgo

package main

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework UserNotifications

#include <stdlib.h>
#import <Foundation/Foundation.h>
#import <UserNotifications/UserNotifications.h>

static NSString* dc_string(const char* s) {
	if (s == NULL || s[0] == '\0') {
		return nil;
	}
	return [NSString stringWithUTF8String:s];
}

// dc_post_console_notice posts one console notice. Notices sharing a thread
// are stacked together in Notification Center.
static int dc_post_console_notice(const char* title, const char* subtitle, const char* body, const char* thread) {
	if (@available(macOS 10.14, *)) {
		@autoreleasepool {
			UNMutableNotificationContent* content = [[UNMutableNotificationContent alloc] init];
			NSString* s;
			if ((s = dc_string(title)) != nil) content.title = s;
			if ((s = dc_string(subtitle)) != nil) content.subtitle = s;
			if ((s = dc_string(body)) != nil) content.body = s;
			if ((s = dc_string(thread)) != nil) content.threadIdentifier = s;

			UNNotificationRequest* request = [UNNotificationRequest requestWithIdentifier:[[NSUUID UUID] UUIDString]
				content:content
				trigger:nil];
			UNUserNotificationCenter* center = [UNUserNotificationCenter currentNotificationCenter];
			[center requestAuthorizationWithOptions:UNAuthorizationOptionAlert
				completionHandler:^(BOOL granted, NSError* _Nullable error) {
					if (granted && error == nil) {
						[center addNotificationRequest:request withCompletionHandler:nil];
					}
				}];
		}
		return 0;
	}
	return -1;
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

func notifyNative(n notice) error {
	fields := []string{n.Title, n.Subtitle, n.Body, n.Thread}
	cs := make([]*C.char, len(fields))
	for i, f := range fields {
		cs[i] = C.CString(f)
		defer C.free(unsafe.Pointer(cs[i]))
	}
	if C.dc_post_console_notice(cs[0], cs[1], cs[2], cs[3]) != 0 {
		return errors.New("notification center requires macOS 10.14")
	}
	return nil
}
